package gallery

import (
	"strings"
	"time"
)

// Containment selects when slides are letterboxed instead of cropped.
type Containment string

const (
	ContainNone      Containment = "none"
	ContainAll       Containment = "all"
	ContainLandscape Containment = "landscape"
	ContainPortrait  Containment = "portrait"
	ContainParent    Containment = "parent"
)

// ThumbnailOptions configure the thumbnail strip navigator.
type ThumbnailOptions struct {
	Element     string
	Images      []string
	Captions    []string
	Buttons     bool
	ButtonColor string
	ActiveColor string

	// Repeat is derived: how many times the image sequence is laid out in the
	// strip so wraparound never exposes an empty slot.
	Repeat int
}

// IndicatorOptions configure the dot navigator.
type IndicatorOptions struct {
	Element     string
	Color       string
	ActiveColor string
	Round       bool
	Opacity     float64
	Image       string
	ActiveImage string
}

// TextOptions configure the per-slide text element.
type TextOptions struct {
	Element string
	Items   []string
}

// ButtonOptions configure a free-standing prev or next button.
type ButtonOptions struct {
	Element string
	Text    string
	Image   string
}

// CounterOptions configure the "n of m" counter.
type CounterOptions struct {
	Element   string
	Separator string
}

// LoadingOptions configure the loading overlay.
type LoadingOptions struct {
	Image string
	All   bool
}

// Config is a fully resolved gallery configuration.
type Config struct {
	Gallery    string
	Images     []string
	Links      []string
	BgColor    string
	Auto       bool
	Pause      bool
	Delay      time.Duration
	Fade       time.Duration
	Contain    Containment
	Thumbnails ThumbnailOptions
	Indicators IndicatorOptions
	Text       TextOptions
	Prev       ButtonOptions
	Next       ButtonOptions
	Counter    CounterOptions
	Loading    LoadingOptions
}

// InitialPosition is the starting value of the position counter: a large
// multiple of the image count so decrements never drive it negative.
func (c Config) InitialPosition() int {
	return len(c.Images) * 10000
}

// Defaults returns the documented default configuration.
func Defaults() Config {
	return Config{
		BgColor: "#FFF",
		Auto:    true,
		Pause:   true,
		Delay:   5000 * time.Millisecond,
		Fade:    1000 * time.Millisecond,
		Contain: ContainNone,
		Thumbnails: ThumbnailOptions{
			Buttons:     true,
			ButtonColor: "#000",
			ActiveColor: "#000",
		},
		Indicators: IndicatorOptions{
			Color:       "#999",
			ActiveColor: "#FFF",
			Opacity:     1,
		},
		Prev:    ButtonOptions{Text: "&#10094;"},
		Next:    ButtonOptions{Text: "&#10095;"},
		Counter: CounterOptions{Separator: " of "},
		Loading: LoadingOptions{All: true},
	}
}

// Overrides is user-supplied configuration. Nil fields keep the default.
type Overrides struct {
	Gallery    *string             `toml:"gallery" json:"gallery"`
	Images     []string            `toml:"images" json:"images"`
	Links      []string            `toml:"links" json:"links"`
	BgColor    *string             `toml:"bg_color" json:"bg_color"`
	Auto       *bool               `toml:"auto" json:"auto"`
	Pause      *bool               `toml:"pause" json:"pause"`
	Delay      *int                `toml:"delay" json:"delay"` // milliseconds
	Fade       *int                `toml:"fade" json:"fade"`   // milliseconds
	Contain    *string             `toml:"contain" json:"contain"`
	Thumbnails *ThumbnailOverrides `toml:"thumbnails" json:"thumbnails"`
	Indicators *IndicatorOverrides `toml:"indicators" json:"indicators"`
	Text       *TextOverrides      `toml:"text" json:"text"`
	Prev       *ButtonOverrides    `toml:"prev" json:"prev"`
	Next       *ButtonOverrides    `toml:"next" json:"next"`
	Counter    *CounterOverrides   `toml:"counter" json:"counter"`
	Loading    *LoadingOverrides   `toml:"loading" json:"loading"`
}

// ThumbnailOverrides are the thumbnails options as read from a file.
type ThumbnailOverrides struct {
	Element     *string  `toml:"element" json:"element"`
	Images      []string `toml:"images" json:"images"`
	Captions    []string `toml:"captions" json:"captions"`
	Buttons     *bool    `toml:"buttons" json:"buttons"`
	ButtonColor *string  `toml:"button_color" json:"button_color"`
	ActiveColor *string  `toml:"active_color" json:"active_color"`
}

// IndicatorOverrides are the indicators options as read from a file.
type IndicatorOverrides struct {
	Element     *string  `toml:"element" json:"element"`
	Color       *string  `toml:"color" json:"color"`
	ActiveColor *string  `toml:"acolor" json:"acolor"`
	Round       *bool    `toml:"round" json:"round"`
	Opacity     *float64 `toml:"opacity" json:"opacity"`
	Image       *string  `toml:"image" json:"image"`
	ActiveImage *string  `toml:"aimage" json:"aimage"`
}

// TextOverrides are the text options as read from a file.
type TextOverrides struct {
	Element *string  `toml:"element" json:"element"`
	Items   []string `toml:"items" json:"items"`
}

// ButtonOverrides are the prev or next options as read from a file.
type ButtonOverrides struct {
	Element *string `toml:"element" json:"element"`
	Text    *string `toml:"text" json:"text"`
	Image   *string `toml:"image" json:"image"`
}

// CounterOverrides are the counter options as read from a file.
type CounterOverrides struct {
	Element   *string `toml:"element" json:"element"`
	Separator *string `toml:"separator" json:"separator"`
}

// LoadingOverrides are the loading options as read from a file.
type LoadingOverrides struct {
	Image *string `toml:"image" json:"image"`
	All   *bool   `toml:"all" json:"all"`
}

// Resolve merges o over Defaults and validates the result. Problems are
// reported as diagnostics and never stop resolution.
func Resolve(o Overrides) (Config, []Diagnostic) {
	cfg := Defaults()

	setString(&cfg.Gallery, o.Gallery)
	setSlice(&cfg.Images, o.Images)
	setSlice(&cfg.Links, o.Links)
	setString(&cfg.BgColor, o.BgColor)
	setBool(&cfg.Auto, o.Auto)
	setBool(&cfg.Pause, o.Pause)
	setMillis(&cfg.Delay, o.Delay)
	setMillis(&cfg.Fade, o.Fade)
	if o.Contain != nil {
		cfg.Contain = Containment(strings.ToLower(strings.TrimSpace(*o.Contain)))
	}

	if th := o.Thumbnails; th != nil {
		setString(&cfg.Thumbnails.Element, th.Element)
		setSlice(&cfg.Thumbnails.Images, th.Images)
		setSlice(&cfg.Thumbnails.Captions, th.Captions)
		setBool(&cfg.Thumbnails.Buttons, th.Buttons)
		setString(&cfg.Thumbnails.ButtonColor, th.ButtonColor)
		setString(&cfg.Thumbnails.ActiveColor, th.ActiveColor)
	}
	if in := o.Indicators; in != nil {
		setString(&cfg.Indicators.Element, in.Element)
		setString(&cfg.Indicators.Color, in.Color)
		setString(&cfg.Indicators.ActiveColor, in.ActiveColor)
		setBool(&cfg.Indicators.Round, in.Round)
		if in.Opacity != nil {
			cfg.Indicators.Opacity = *in.Opacity
		}
		setString(&cfg.Indicators.Image, in.Image)
		setString(&cfg.Indicators.ActiveImage, in.ActiveImage)
	}
	if tx := o.Text; tx != nil {
		setString(&cfg.Text.Element, tx.Element)
		setSlice(&cfg.Text.Items, tx.Items)
	}
	mergeButton(&cfg.Prev, o.Prev)
	mergeButton(&cfg.Next, o.Next)
	if co := o.Counter; co != nil {
		setString(&cfg.Counter.Element, co.Element)
		setString(&cfg.Counter.Separator, co.Separator)
	}
	if lo := o.Loading; lo != nil {
		setString(&cfg.Loading.Image, lo.Image)
		setBool(&cfg.Loading.All, lo.All)
	}

	cfg.Thumbnails.Repeat = repeatCount(len(cfg.Images))
	return cfg, validate(cfg)
}

func validate(cfg Config) []Diagnostic {
	var diags []Diagnostic
	if strings.TrimSpace(cfg.Gallery) == "" {
		diags = append(diags, Diagnostic{Kind: KindMissing, Field: "gallery"})
	}
	if len(cfg.Images) == 0 {
		diags = append(diags, Diagnostic{Kind: KindMissing, Field: "images"})
		return diags
	}
	parallel := []struct {
		field string
		items []string
	}{
		{"thumbnails.images", cfg.Thumbnails.Images},
		{"links", cfg.Links},
		{"thumbnails.captions", cfg.Thumbnails.Captions},
	}
	for _, p := range parallel {
		if p.items != nil && len(p.items) != len(cfg.Images) {
			diags = append(diags, Diagnostic{Kind: KindCount, Field: p.field})
		}
	}
	return diags
}

// repeatCount returns how many copies of the image sequence the thumbnail
// strip needs. The strip shows 5 slots plus buffer on each side.
func repeatCount(images int) int {
	switch images {
	case 1:
		return 10
	case 2:
		return 5
	case 3:
		return 4
	case 4:
		return 3
	}
	if images <= 10 {
		return 2
	}
	return 1
}

func mergeButton(dst *ButtonOptions, o *ButtonOverrides) {
	if o == nil {
		return
	}
	setString(&dst.Element, o.Element)
	setString(&dst.Text, o.Text)
	setString(&dst.Image, o.Image)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// setSlice copies v into dst. An empty but present list stays non-nil so it
// is still validated against images.
func setSlice(dst *[]string, v []string) {
	if v != nil {
		*dst = append(make([]string, 0, len(v)), v...)
	}
}

func setMillis(dst *time.Duration, v *int) {
	if v != nil && *v >= 0 {
		*dst = time.Duration(*v) * time.Millisecond
	}
}
