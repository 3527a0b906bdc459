// SPDX-FileCopyrightText: The weather2wear authors
//
// SPDX-License-Identifier: MIT

// Package presenter turns weather summaries and outfit suggestions into the
// rendered page. It holds no network or mutable request state; everything is
// computed from its inputs.
package presenter

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/nathan-osman/go-sunrise"
	"github.com/vorlif/humanize"
	delocale "github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"
	moonphase "github.com/wneessen/go-moonphase"
	"golang.org/x/text/language"

	"github.com/weather2wear/weather2wear/internal/config"
	"github.com/weather2wear/weather2wear/internal/forecast"
	"github.com/weather2wear/weather2wear/internal/outfit"
	"github.com/weather2wear/weather2wear/internal/weather"
)

//go:embed templates/*.gohtml
var templates embed.FS

// Input mirrors the form values of the page so that a submission can be
// re-displayed as entered.
type Input struct {
	ActivityLevel string
	ActivityType  string
	Location      string
}

// CityView is the resolved place the forecast applies to
type CityView struct {
	Name    string
	Country string
}

// SummaryView carries the aggregated weather values for display
type SummaryView struct {
	Condition      string
	ConditionIcon  string
	AvgTemperature float64
	AvgHumidity    float64
	AvgWindSpeed   float64
}

// SunView carries the celestial extras shown with the summary
type SunView struct {
	Sunrise       time.Time
	Sunset        time.Time
	MoonPhase     string
	MoonPhaseIcon string
}

// SampleView is a single 3-hourly forecast entry prepared for display
type SampleView struct {
	Timestamp     string
	Condition     string
	ConditionIcon string
	Description   string
	IconURL       string
	Temperature   float64
	Humidity      float64
	WindSpeed     float64
}

// SlotView is a single clothing slot of the outfit suggestion
type SlotView struct {
	Label string
	Text  string
}

// Page is the complete template context for one render of the single page
type Page struct {
	Title     string
	Form      Input
	Error     string
	UpdatedAt time.Time
	City      *CityView
	Summary   *SummaryView
	Sun       *SunView
	Forecasts []SampleView
	Outfit    []SlotView
}

// Presenter renders Page contexts with the configured locale
type Presenter struct {
	localizer *spreak.Localizer
	humanizer *humanize.Humanizer
	page      *template.Template
	iconBase  string
	title     string
}

// New returns a new Presenter for the given configuration and localizer
func New(conf *config.Config, loc *spreak.Localizer) (*Presenter, error) {
	pres := &Presenter{
		localizer: loc,
		iconBase:  conf.Weather.IconBaseURL,
		title:     conf.PageTitle,
	}

	collection := humanize.MustNew(humanize.WithLocale(delocale.New()))
	pres.humanizer = collection.CreateHumanizer(language.Make(conf.Locale), language.English)

	page, err := template.New("page.gohtml").Funcs(pres.templateFuncMap()).ParseFS(templates,
		"templates/page.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	pres.page = page

	return pres, nil
}

// BuildPage assembles the template context for one render. A non-nil
// suggestion must cover all clothing slots; an incomplete one fails with a
// MissingSlotError instead of producing a partial outfit block. Weather data
// and summary may each be nil, the corresponding sections are then omitted.
func (p *Presenter) BuildPage(in Input, data *weather.Data, summary *forecast.Summary,
	suggestion outfit.Suggestion, cycleErr error,
) (*Page, error) {
	if suggestion != nil {
		if err := suggestion.Validate(); err != nil {
			return nil, err
		}
	}

	page := &Page{
		Title: p.title,
		Form:  in,
	}
	if cycleErr != nil {
		page.Error = cycleErr.Error()
	}

	if data != nil {
		page.UpdatedAt = data.GeneratedAt
		page.City = &CityView{Name: data.City.Name, Country: data.City.Country}
		page.Sun = p.sunView(data)
		page.Forecasts = p.sampleViews(data.Samples)
	}
	if summary != nil {
		page.Summary = &SummaryView{
			Condition:      summary.MostCommonCondition,
			ConditionIcon:  EmojiWithSpace(ConditionIcons[summary.MostCommonCondition]),
			AvgTemperature: summary.AvgTemperature,
			AvgHumidity:    summary.AvgHumidity,
			AvgWindSpeed:   summary.AvgWindSpeed,
		}
	}
	if suggestion != nil {
		page.Outfit = make([]SlotView, 0, len(outfit.Slots))
		for _, slot := range outfit.Slots {
			page.Outfit = append(page.Outfit, SlotView{
				Label: p.loc(slot),
				Text:  suggestion[slot],
			})
		}
	}

	return page, nil
}

// Render writes the rendered page to the given writer
func (p *Presenter) Render(w io.Writer, page *Page) error {
	if err := p.page.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render page template: %w", err)
	}
	return nil
}

// IconURL resolves an icon code against the configured icon base URL. The
// existence of the icon is not validated.
func (p *Presenter) IconURL(code string) string {
	return fmt.Sprintf("%s/%s@2x.png", p.iconBase, code)
}

func (p *Presenter) sampleViews(samples forecast.Set) []SampleView {
	views := make([]SampleView, 0, len(samples))
	for _, sample := range samples {
		view := SampleView{
			Timestamp:     sample.Timestamp,
			Condition:     sample.Condition,
			ConditionIcon: EmojiWithSpace(ConditionIcons[sample.Condition]),
			Description:   capFirst(sample.Description),
			Temperature:   sample.Temperature,
			Humidity:      sample.Humidity,
			WindSpeed:     sample.WindSpeed,
		}
		if sample.Icon != "" {
			view.IconURL = p.IconURL(sample.Icon)
		}
		views = append(views, view)
	}
	return views
}

// sunView derives sunrise, sunset and moon phase for the forecast city. The
// weather endpoint omits coordinates for some locations, in that case no sun
// view is shown.
func (p *Presenter) sunView(data *weather.Data) *SunView {
	if data.City.Latitude == 0 && data.City.Longitude == 0 {
		return nil
	}
	day := data.GeneratedAt
	rise, set := sunrise.SunriseSunset(data.City.Latitude, data.City.Longitude, day.Year(),
		day.Month(), day.Day())
	m := moonphase.New(day)
	phase := m.PhaseName()
	return &SunView{
		Sunrise:       rise,
		Sunset:        set,
		MoonPhase:     p.loc(phase),
		MoonPhaseIcon: MoonPhaseIcons[phase],
	}
}

// EmojiWithSpace pads an emoji with spaces matching its render width, so that
// following text does not stick to wide glyphs
func EmojiWithSpace(emoji string) string {
	if emoji == "" {
		return ""
	}
	width := runewidth.StringWidth(emoji)
	return fmt.Sprintf("%s%s", emoji, strings.Repeat(" ", width+1))
}
