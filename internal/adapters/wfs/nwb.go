package wfs

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"straatradar/internal/core/domain"
)

// FeatureMember is one nwbwegen:wegvakken record as it appears inside a
// wfs:member element. PosList holds the raw gml:posList text: alternating
// x y coordinate tokens separated by whitespace.
type FeatureMember struct {
	StreetName   string `xml:"stt_naam"`
	PlaceName    string `xml:"wpsnaamnen"`
	Municipality string `xml:"gme_naam"`
	PosList      string `xml:"geom>LineString>posList"`
}

type featureCollection struct {
	XMLName xml.Name        `xml:"FeatureCollection"`
	Next    string          `xml:"next,attr"`
	Members []FeatureMember `xml:"member>wegvakken"`
}

// NWBParser parses GetFeature responses from the NWB wegvakken layer.
type NWBParser struct{}

// ParsePage decodes one WFS response document. The next link is the
// FeatureCollection's next attribute; absent on the last page.
func (NWBParser) ParsePage(data []byte) ([]FeatureMember, string, error) {
	var fc featureCollection
	if err := xml.Unmarshal(data, &fc); err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrMalformedPage, err)
	}
	return fc.Members, fc.Next, nil
}

// PathRewriter swaps a server-internal path prefix in next links for the
// public endpoint path. The NWB mapserver advertises its next page as
// ":/cgi-bin/mapserv.fcgi?...", which must become "/nwbwegen/wfs?..."
// before it resolves.
type PathRewriter struct {
	From string
	To   string
}

func (r PathRewriter) Rewrite(link string) string {
	return strings.Replace(link, r.From, r.To, 1)
}

// ParseFragment converts one feature member into a validated Fragment.
// Coordinate tokens pair up in order: token 2i is x, token 2i+1 is y. A
// dangling or non-numeric token fails the whole member; there is no
// partial-fragment recovery.
func ParseFragment(m FeatureMember) (*domain.Fragment, error) {
	tokens := strings.Fields(m.PosList)
	if len(tokens)%2 != 0 {
		return nil, &domain.ValidationError{Field: "geometry", Reason: "has an odd coordinate count"}
	}

	vertices := make([]domain.RDPoint, 0, len(tokens)/2)
	for i := 0; i+1 < len(tokens); i += 2 {
		x, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return nil, &domain.ValidationError{Field: "geometry", Reason: "contains non-numeric token " + strconv.Quote(tokens[i])}
		}
		y, err := strconv.ParseFloat(tokens[i+1], 64)
		if err != nil {
			return nil, &domain.ValidationError{Field: "geometry", Reason: "contains non-numeric token " + strconv.Quote(tokens[i+1])}
		}
		vertices = append(vertices, domain.RDPoint{X: x, Y: y})
	}

	return domain.NewFragment(m.StreetName, m.PlaceName, m.Municipality, vertices)
}
