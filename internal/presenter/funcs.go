// SPDX-FileCopyrightText: The weather2wear authors
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/vorlif/humanize"
)

func (p *Presenter) templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"timeFormat":    timeFormat,
		"localizedTime": p.localizedTime,
		"floatFormat":   floatFormat,
		"loc":           p.loc,
		"lc":            strings.ToLower,
		"uc":            strings.ToUpper,
		"capFirst":      capFirst,
		"list":          list,
	}
}

func (p *Presenter) loc(val string) string {
	return p.localizer.Get(val)
}

func (p *Presenter) localizedTime(val time.Time) string {
	return p.humanizer.FormatTime(val, humanize.TimeFormat)
}

func timeFormat(val time.Time, fmt string) string {
	return val.Format(fmt)
}

func floatFormat(val float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, val)
}

func list(vals ...string) []string {
	return vals
}

// capFirst upper-cases the first letter only, the rest is left untouched
func capFirst(val string) string {
	if val == "" {
		return val
	}
	r, size := utf8.DecodeRuneInString(val)
	return string(unicode.ToUpper(r)) + val[size:]
}
