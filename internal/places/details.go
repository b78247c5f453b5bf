// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package places

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/placelist/internal/httputil"
)

// placeDetailsBase is the Places details endpoint base. Declared as a var so
// tests can substitute an httptest server.
var placeDetailsBase = "https://places.googleapis.com/v1/places"

// detailsFieldMask limits the details response to the enrichment fields.
const detailsFieldMask = "displayName,formattedAddress,addressComponents,nationalPhoneNumber,websiteUri"

// Details holds the per-place enrichment fields the search stage does not
// return. City/State/Country come from address components and are empty when
// the component is absent; the orchestrator applies the scope fallbacks.
type Details struct {
	Name             string
	FormattedAddress string
	Phone            string
	Website          string
	City             string
	State            string
	Country          string
}

// DetailsClient looks up extended place fields by place ID.
type DetailsClient struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// FetchDetails fetches details for one place ID. Failures follow the same
// contract as SearchPage: non-2xx becomes a *httputil.StatusError.
func (c *DetailsClient) FetchDetails(ctx context.Context, placeID string) (*Details, error) {
	reqURL := placeDetailsBase + "/" + url.PathEscape(placeID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-Goog-Api-Key", c.APIKey)
	req.Header.Set("X-Goog-FieldMask", detailsFieldMask)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	var pd placeDetailsResponse
	if err := httputil.DoJSON(c.Client, req, &pd); err != nil {
		return nil, err
	}

	d := &Details{
		Name:             pd.DisplayName.Text,
		FormattedAddress: pd.FormattedAddress,
		Phone:            pd.NationalPhoneNumber,
		Website:          pd.WebsiteURI,
		State:            component(pd.AddressComponents, "administrative_area_level_1"),
		Country:          component(pd.AddressComponents, "country"),
	}
	// Smaller municipalities often carry no locality component; the county
	// level is the closest substitute.
	d.City = component(pd.AddressComponents, "locality")
	if d.City == "" {
		d.City = component(pd.AddressComponents, "administrative_area_level_2")
	}
	return d, nil
}

// component returns the long text of the first address component tagged with
// typ, or "" when none matches.
func component(components []addressComponent, typ string) string {
	for _, c := range components {
		for _, t := range c.Types {
			if t == typ {
				return c.LongText
			}
		}
	}
	return ""
}

type placeDetailsResponse struct {
	DisplayName         localizedText      `json:"displayName"`
	FormattedAddress    string             `json:"formattedAddress"`
	AddressComponents   []addressComponent `json:"addressComponents"`
	NationalPhoneNumber string             `json:"nationalPhoneNumber"`
	WebsiteURI          string             `json:"websiteUri"`
}

type addressComponent struct {
	LongText  string   `json:"longText"`
	ShortText string   `json:"shortText"`
	Types     []string `json:"types"`
}
