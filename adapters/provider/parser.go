package provider

import (
	"strings"
	"unicode/utf8"

	"datasight/domain/analysis"

	"github.com/tidwall/gjson"
)

// SummaryPrefixRunes bounds the summary built from an unparseable reply
const SummaryPrefixRunes = 200

// ParsePayload turns a raw backend reply into a payload. The first balanced
// object literal in the text is parsed as JSON; if there is none, or it does
// not parse, the raw reply is wrapped instead. The second return value reports
// whether the structured parse succeeded.
func ParsePayload(raw string) (analysis.Payload, bool) {
	if obj, ok := firstObject(raw); ok && gjson.Valid(obj) {
		parsed := gjson.Parse(obj)
		if parsed.IsObject() {
			return payloadFromJSON(parsed), true
		}
	}
	return lenientPayload(raw), false
}

func lenientPayload(raw string) analysis.Payload {
	text := strings.TrimSpace(raw)
	summary := text
	if utf8.RuneCountInString(text) > SummaryPrefixRunes {
		summary = string([]rune(text)[:SummaryPrefixRunes]) + "..."
	}
	return analysis.Payload{
		Summary:  summary,
		Insights: []string{text},
	}
}

// firstObject returns the first balanced {...} span, skipping braces inside
// string literals.
func firstObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func payloadFromJSON(obj gjson.Result) analysis.Payload {
	p := analysis.Payload{
		Insights:             stringList(field(obj, "insights", "keyInsights", "key_insights")),
		Trends:               stringList(field(obj, "trends")),
		QualityIssues:        stringList(field(obj, "qualityIssues", "quality_issues", "dataQualityIssues")),
		Recommendations:      stringList(field(obj, "recommendations")),
		Statistics:           statisticList(field(obj, "statistics", "stats")),
		BusinessApplications: stringList(field(obj, "businessApplications", "business_applications")),
	}
	if s := field(obj, "summary"); s.Exists() {
		p.Summary = strings.TrimSpace(scalarText(s))
	}
	return p
}

// field returns the first key present on obj
func field(obj gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if r := obj.Get(k); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}

// stringList accepts an array of strings or objects, or a single string
func stringList(r gjson.Result) []string {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	if !r.IsArray() {
		if s := strings.TrimSpace(scalarText(r)); s != "" {
			return []string{s}
		}
		return nil
	}

	var out []string
	r.ForEach(func(_, item gjson.Result) bool {
		if s := strings.TrimSpace(scalarText(item)); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}

// scalarText renders strings as-is and anything else as compact JSON
func scalarText(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.String()
	case gjson.Null:
		return ""
	case gjson.JSON:
		// objects like {"insight": "..."} keep their text
		for _, k := range []string{"text", "insight", "description", "title"} {
			if v := r.Get(k); v.Type == gjson.String {
				return v.String()
			}
		}
		return r.Raw
	default:
		return r.Raw
	}
}

func statisticList(r gjson.Result) []analysis.Statistic {
	if !r.Exists() {
		return nil
	}

	var out []analysis.Statistic
	add := func(item gjson.Result) {
		if m, ok := item.Value().(map[string]any); ok && len(m) > 0 {
			out = append(out, analysis.Statistic(m))
		}
	}
	if r.IsArray() {
		r.ForEach(func(_, item gjson.Result) bool {
			add(item)
			return true
		})
	} else {
		add(r)
	}
	return out
}
