// Package booking describes the embedded demo scheduling widget.
// The widget itself is external; we only hand it a URL.
package booking

import (
	"fmt"
	"net/url"
	"strings"

	"showcase/internal/config"
)

// Widget holds the presentation options passed to the scheduler
type Widget struct {
	URL                    string
	BackgroundColor        string
	TextColor              string
	PrimaryColor           string
	HideEventTypeDetails   bool
	HideLandingPageDetails bool
}

// FromConfig builds a widget from the booking config section
func FromConfig(cfg config.BookingConfig) Widget {
	return Widget{
		URL:                    cfg.URL,
		BackgroundColor:        cfg.BackgroundColor,
		TextColor:              cfg.TextColor,
		PrimaryColor:           cfg.PrimaryColor,
		HideEventTypeDetails:   cfg.HideEventTypeDetails,
		HideLandingPageDetails: cfg.HideLandingPageDetails,
	}
}

// EmbedURL returns the scheduling URL with page settings as query
// parameters. Colours are sent without a leading '#'.
func (w Widget) EmbedURL() (string, error) {
	u, err := url.Parse(w.URL)
	if err != nil {
		return "", fmt.Errorf("parse booking url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("booking url %q is not absolute", w.URL)
	}

	q := u.Query()
	setColor(q, "background_color", w.BackgroundColor)
	setColor(q, "text_color", w.TextColor)
	setColor(q, "primary_color", w.PrimaryColor)
	if w.HideEventTypeDetails {
		q.Set("hide_event_type_details", "1")
	}
	if w.HideLandingPageDetails {
		q.Set("hide_landing_page_details", "1")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func setColor(q url.Values, key, value string) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "#")
	if value != "" {
		q.Set(key, strings.ToLower(value))
	}
}
