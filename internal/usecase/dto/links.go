package dto

import (
	"fmt"
	"net/url"
	"strings"
)

// LinkBuilder produces the HATEOAS URLs embedded in feature properties and
// in the navigation indexes. All links are absolute, rooted at the
// externally visible base URL.
type LinkBuilder struct {
	base string
}

func NewLinkBuilder(baseURL string) LinkBuilder {
	return LinkBuilder{base: strings.TrimRight(baseURL, "/")}
}

// Navigation is the navigation index URL for one feature.
func (l LinkBuilder) Navigation(source, featureID string) string {
	return fmt.Sprintf("%s/linked-data/%s/%s/navigation",
		l.base, url.PathEscape(source), url.PathEscape(featureID))
}

// NavigationMode is the URL navigating from one feature in one mode.
func (l LinkBuilder) NavigationMode(source, featureID, mode string) string {
	return l.Navigation(source, featureID) + "/" + strings.ToUpper(mode)
}

// NavigationModeSource addresses the features of one data source along a
// navigation.
func (l LinkBuilder) NavigationModeSource(source, featureID, mode, dataSource string) string {
	return l.NavigationMode(source, featureID, mode) + "/" + url.PathEscape(dataSource)
}

// Source is the feature listing URL of one data source.
func (l LinkBuilder) Source(source string) string {
	return fmt.Sprintf("%s/linked-data/%s", l.base, url.PathEscape(source))
}

// Basin is the aggregated upstream basin URL for one feature.
func (l LinkBuilder) Basin(source, featureID string) string {
	return fmt.Sprintf("%s/linked-data/%s/%s/basin",
		l.base, url.PathEscape(source), url.PathEscape(featureID))
}
