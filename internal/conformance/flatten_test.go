package conformance

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlatten(t *testing.T) {
	reports := []*Report{
		{
			Implementation:    Implementation{Organization: "Acme", Project: "gw", Version: "v1.0.0"},
			GatewayAPIChannel: "experimental",
			Mode:              "default",
			Profiles: []Profile{
				{Name: "HTTP", Core: &Result{Result: "success"}, Extended: &ExtendedResult{
					Result:            Result{Result: "partial"},
					SupportedFeatures: []string{"HTTPRouteMethodMatching"},
				}},
				{Name: "TLS"},
			},
			Source: Source{RelPath: "acme/r-report.yaml"},
		},
		{
			Implementation: Implementation{Organization: "Globex", Version: "2.0"},
			Profiles:       []Profile{{Name: "MESH"}},
		},
	}

	want := []Row{
		{Organization: "Acme", Project: "gw", Version: "v1.0.0", Category: "HTTP", SupportedFeatures: []string{"HTTPRouteMethodMatching"},
			CoreResult: "success", ExtendedResult: "partial", Source: "acme/r-report.yaml"},
		{Organization: "Acme", Project: "gw", Version: "v1.0.0", Category: "TLS", Source: "acme/r-report.yaml"},
		{Organization: "Globex", Version: "2.0", Category: "MESH"},
	}

	if diff := cmp.Diff(want, Flatten(reports)); diff != "" {
		t.Errorf("Flatten() mismatch (-want +got):\n%s", diff)
	}
}
