package importer

import "testing"

func TestNormalizeHeader_CanonicalColumns(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Parent CI", "parent_ci"},
		{"Parent CI Name", "parent_ci"},
		{"parentci", "parent_ci"},
		{"CI Name", "name"},
		{"ci name", "name"},
		{"CIName", "name"},
		{"Name", "name"},
		{"Class", "class"},
		{"CI Class", "class"},
		{"Relationship", "relationship"},
		{"Relationship Type", "relationship"},
		{"Description", "description"},
		{"Desc", "description"},
		{"Project", "project"},
		{"Project Name", "project"},
		{"Location", "location"},
		{"Environment", "environment"},
		{"Service Offering", "service_offering"},
		{"ServiceOffering", "service_offering"},
		{"Business Service", "business_service"},
		{"  Business   Service  ", "business_service"},
	}

	for _, tc := range cases {
		if got := NormalizeHeader(tc.raw); got != tc.want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeHeader_FallbackSanitizes(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Custom Field", "custom_field"},
		{"Serial Number", "serial_number"},
		{"ID", "id"},
		{"IP Address", "ip_address"},
		{"Owner/Group", "owner_group"},
	}

	for _, tc := range cases {
		if got := NormalizeHeader(tc.raw); got != tc.want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeHeaders_MapsEveryColumn(t *testing.T) {
	raw := []string{"CI Name", "Class", "Custom Field"}
	got := NormalizeHeaders(raw)

	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got["CI Name"] != "name" || got["Class"] != "class" || got["Custom Field"] != "custom_field" {
		t.Errorf("unexpected mapping: %v", got)
	}
}
