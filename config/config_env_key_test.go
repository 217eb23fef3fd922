package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"shop": map[string]any{
			"flatShippingFee":       250,
			"freeShippingThreshold": 3000,
		},
		"upstream": map[string]any{
			"baseUrl": "",
		},
		"proofStore": map[string]any{
			"bucketUrl": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "SHOP_FLATSHIPPINGFEE", want: "shop.flatShippingFee"},
		{envKey: "SHOP_FREESHIPPINGTHRESHOLD", want: "shop.freeShippingThreshold"},
		{envKey: "UPSTREAM_BASEURL", want: "upstream.baseUrl"},
		{envKey: "PROOFSTORE_BUCKETURL", want: "proofStore.bucketUrl"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
