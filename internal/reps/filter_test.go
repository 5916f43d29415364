package reps

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"civic-api/internal/civic"
)

func basePayload() *civic.Payload {
	return &civic.Payload{
		NormalizedInput: &civic.NormalizedInput{Line1: "100 Main St", City: "Austin", State: "TX", Zip: "78701"},
	}
}

func withOffices(p *civic.Payload, names []string, offices ...civic.Office) *civic.Payload {
	for _, n := range names {
		p.Officials = append(p.Officials, civic.Official{Name: n})
	}
	p.Offices = append(p.Offices, offices...)
	return p
}

func TestFilterAddressMetadata(t *testing.T) {
	res, err := Filter(basePayload())
	if err != nil {
		t.Fatal(err)
	}
	if *res.Address != "100 Main St, Austin, TX 78701" {
		t.Fatalf("unexpected address %q", *res.Address)
	}
	if *res.City != "Austin" {
		t.Fatalf("unexpected city %q", *res.City)
	}
	if res.State != nil || res.County != nil || res.District != nil {
		t.Fatalf("expected absent state/county/district, got %v %v %v", res.State, res.County, res.District)
	}
}

func TestFilterShapeAlwaysPresent(t *testing.T) {
	res, err := Filter(basePayload())
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"address", "state", "city", "county", "district", "reps"} {
		if _, ok := m[k]; !ok {
			t.Fatalf("missing key %q in %s", k, b)
		}
	}
	var buckets map[string]json.RawMessage
	if err := json.Unmarshal(m["reps"], &buckets); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"federal", "state", "city", "county"} {
		if string(buckets[k]) != "[]" {
			t.Fatalf("expected empty bucket %q, got %s", k, buckets[k])
		}
	}
	if string(m["county"]) != "null" {
		t.Fatalf("expected null county, got %s", m["county"])
	}
}

func TestFilterDivisionScan(t *testing.T) {
	p := basePayload()
	p.Divisions = civic.Divisions{
		{ID: "ocd-division/country:us", Name: "United States"},
		{ID: "ocd-division/country:us/state:tx", Name: "Texas"},
		{ID: "ocd-division/country:us/state:tx/county:travis", Name: "Travis County"},
		{ID: "ocd-division/country:us/state:tx/cd:25", Name: "Texas's 25th congressional district"},
		{ID: "ocd-division/country:us/state:tx/place:austin", Name: "Austin city"},
		{ID: "ocd-division/country:us/state:tx/county:williamson", Name: "Williamson County"},
		{ID: "ocd-division/country:us/state:tx/sldl:49", Name: "Texas House district 49"},
	}
	res, err := Filter(p)
	if err != nil {
		t.Fatal(err)
	}
	if *res.County != "Williamson County" {
		t.Fatalf("expected last county to win, got %q", *res.County)
	}
	if *res.District != "Texas's 25th congressional district" {
		t.Fatalf("unexpected district %q", *res.District)
	}
	if *res.State != "Texas" {
		t.Fatalf("unexpected state %q", *res.State)
	}
}

func TestFilterCountyKeyRequiresLowercase(t *testing.T) {
	p := basePayload()
	p.Divisions = civic.Divisions{
		{ID: "ocd-division/country:us/state:tx/county:travis", Name: "Travis County"},
		{ID: "ocd-division/country:us/state:tx/county:St_Louis", Name: "Ignored"},
	}
	res, err := Filter(p)
	if err != nil {
		t.Fatal(err)
	}
	if *res.County != "Travis County" {
		t.Fatalf("expected Travis County, got %q", *res.County)
	}
}

func TestFilterFederalNeverExcluded(t *testing.T) {
	p := withOffices(basePayload(), []string{"A", "B", "C"},
		civic.Office{Name: "County Clerk of the Republic", DivisionID: "ocd-division/country:us", OfficialIndices: []int{0}},
		civic.Office{Name: "U.S. Senator", DivisionID: "ocd-division/country:us/state:tx", OfficialIndices: []int{1}},
		civic.Office{Name: "U.S. Representative", DivisionID: "ocd-division/country:us/state:tx/cd:25", OfficialIndices: []int{2}},
	)
	res, err := Filter(p)
	if err != nil {
		t.Fatal(err)
	}
	want := []Rep{
		{Title: "County Clerk of the Republic", Name: "A"},
		{Title: "U.S. Senator", Name: "B"},
		{Title: "U.S. Representative", Name: "C"},
	}
	if !reflect.DeepEqual(res.Reps.Federal, want) {
		t.Fatalf("unexpected federal bucket %+v", res.Reps.Federal)
	}
	if len(res.Reps.State) != 0 {
		t.Fatalf("expected empty state bucket, got %+v", res.Reps.State)
	}
}

func TestFilterCountyExclusionSkipsRestOfOffice(t *testing.T) {
	p := withOffices(basePayload(), []string{"Clerk One", "Clerk Two", "Judge"},
		civic.Office{Name: "County Clerk", DivisionID: "ocd-division/country:us/state:tx/county:travis", OfficialIndices: []int{0, 1}},
		civic.Office{Name: "County Judge", DivisionID: "ocd-division/country:us/state:tx/county:travis", OfficialIndices: []int{2}},
	)
	res, err := Filter(p)
	if err != nil {
		t.Fatal(err)
	}
	want := []Rep{{Title: "County Judge", Name: "Judge"}}
	if !reflect.DeepEqual(res.Reps.County, want) {
		t.Fatalf("unexpected county bucket %+v", res.Reps.County)
	}
}

func TestFilterStateExclusion(t *testing.T) {
	p := withOffices(basePayload(), []string{"Comptroller", "Governor", "Lt Gov"},
		civic.Office{Name: "Comptroller of Public Accounts", DivisionID: "ocd-division/country:us/state:tx", OfficialIndices: []int{0}},
		civic.Office{Name: "Governor of Texas", DivisionID: "ocd-division/country:us/state:tx", OfficialIndices: []int{1}},
		civic.Office{Name: "Lieutenant Governor of Texas", DivisionID: "ocd-division/country:us/state:tx", OfficialIndices: []int{2}},
	)
	res, err := Filter(p)
	if err != nil {
		t.Fatal(err)
	}
	want := []Rep{{Title: "Governor of Texas", Name: "Governor"}}
	if !reflect.DeepEqual(res.Reps.State, want) {
		t.Fatalf("unexpected state bucket %+v", res.Reps.State)
	}
}

func TestFilterCityAndUnmatched(t *testing.T) {
	p := withOffices(basePayload(), []string{"Mayor", "Advocate", "Other", "Council A", "Council B"},
		civic.Office{Name: "Mayor of Austin", DivisionID: "ocd-division/country:us/state:tx/place:austin", OfficialIndices: []int{0}},
		civic.Office{Name: "Public Advocate", DivisionID: "ocd-division/country:us/state:tx/place:austin", OfficialIndices: []int{1}},
		civic.Office{Name: "Governor of Oklahoma", DivisionID: "ocd-division/country:us/state:ok", OfficialIndices: []int{2}},
		civic.Office{Name: "City Council Member", DivisionID: "ocd-division/country:us/state:tx/place:austin/council_district:1", OfficialIndices: []int{3, 4}},
	)
	res, err := Filter(p)
	if err != nil {
		t.Fatal(err)
	}
	want := []Rep{
		{Title: "Mayor of Austin", Name: "Mayor"},
		{Title: "City Council Member", Name: "Council A"},
		{Title: "City Council Member", Name: "Council B"},
	}
	if !reflect.DeepEqual(res.Reps.City, want) {
		t.Fatalf("unexpected city bucket %+v", res.Reps.City)
	}
	if len(res.Reps.State) != 0 {
		t.Fatalf("out-of-state office leaked: %+v", res.Reps.State)
	}
}

func TestFilterDuplicatesPreserved(t *testing.T) {
	p := withOffices(basePayload(), []string{"Sen A", "Sen B"},
		civic.Office{Name: "U.S. Senator", DivisionID: "ocd-division/country:us/state:tx", OfficialIndices: []int{0}},
		civic.Office{Name: "U.S. Senator", DivisionID: "ocd-division/country:us/state:tx", OfficialIndices: []int{1}},
	)
	res, err := Filter(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Reps.Federal) != 2 || res.Reps.Federal[1].Name != "Sen B" {
		t.Fatalf("expected both senators in order, got %+v", res.Reps.Federal)
	}
}

func TestFilterIdempotent(t *testing.T) {
	p := withOffices(basePayload(), []string{"A", "B"},
		civic.Office{Name: "Mayor", DivisionID: "ocd-division/country:us/state:tx/place:austin", OfficialIndices: []int{0}},
		civic.Office{Name: "County Judge", DivisionID: "ocd-division/country:us/state:tx/county:travis", OfficialIndices: []int{1}},
	)
	p.Divisions = civic.Divisions{{ID: "ocd-division/country:us/state:tx", Name: "Texas"}}
	a, err := Filter(p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Filter(p)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("results differ:\n%+v\n%+v", a, b)
	}
}

func TestFilterInvalidPayload(t *testing.T) {
	cases := map[string]*civic.Payload{
		"nil":            nil,
		"no input":       {},
		"bad index":      withOffices(basePayload(), []string{"A"}, civic.Office{Name: "Mayor", DivisionID: "place:x", OfficialIndices: []int{3}}),
		"upstream error": {Error: &civic.APIError{Code: 400, Message: "bad"}},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := Filter(p)
			if res != nil {
				t.Fatalf("expected nil result, got %+v", res)
			}
			if !errors.Is(err, ErrInvalidPayload) {
				t.Fatalf("expected ErrInvalidPayload, got %v", err)
			}
			var pe *PayloadError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *PayloadError, got %T", err)
			}
		})
	}
}

func TestRepJSON(t *testing.T) {
	b, err := json.Marshal(Rep{Title: "Mayor", Name: "Kirk Watson"})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"Mayor":"Kirk Watson"}` {
		t.Fatalf("unexpected encoding %s", b)
	}
	var r Rep
	if err := json.Unmarshal(b, &r); err != nil {
		t.Fatal(err)
	}
	if r.Title != "Mayor" || r.Name != "Kirk Watson" {
		t.Fatalf("unexpected decode %+v", r)
	}
	if err := json.Unmarshal([]byte(`{"a":"1","b":"2"}`), &r); err == nil {
		t.Fatal("expected error for multi-entry rep")
	}
}
