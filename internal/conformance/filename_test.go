package conformance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFileName(t *testing.T) {
	tests := []struct {
		in   string
		want FileName
	}{
		{"experimental-v1.0.0-default-report.yaml", FileName{Channel: "experimental", Version: "v1.0.0", Mode: "default", Valid: true}},
		{"acme/standard-v1.1.0-rc.1-default-report.yaml", FileName{Channel: "standard", Version: "v1.1.0-rc.1", Mode: "default", Valid: true}},
		{`acme\standard-v2-other-report.yaml`, FileName{Channel: "standard", Version: "v2", Mode: "other", Valid: true}},
		{"report.yaml", FileName{}},
		{"v1.0.0-report.yaml", FileName{}},
		{"standard-default-report.yaml", FileName{}},
		{"standard--default-report.yaml", FileName{}},
		{"standard-v1-default-report.yml", FileName{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFileName(tt.in))
		})
	}
}
