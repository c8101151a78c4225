package ats

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ErrNotObject is returned by DecodeResume when the payload is not a JSON object.
var ErrNotObject = errors.New("resume payload is not a JSON object")

// Normalize coerces a loosely shaped extraction record into a NormalizedResume.
// It never fails; unknown or malformed fields fall back to empty values.
func Normalize(raw map[string]any) NormalizedResume {
	out := NormalizedResume{
		PersonalInfo:        normalizePersonalInfo(raw),
		ProfessionalSummary: firstScalar(raw, summaryKeys),
		Skills:              normalizeSkills(raw),
		Achievements:        firstList(raw, achievementKeys),
		Languages:           firstList(raw, languageKeys),
		Interests:           firstList(raw, interestKeys),
	}

	work := firstObjects(raw, workExperienceKeys)
	out.WorkExperience = make([]WorkExperience, 0, len(work))
	for _, item := range work {
		out.WorkExperience = append(out.WorkExperience, normalizeWork(item))
	}

	edu := firstObjects(raw, educationKeys)
	out.Education = make([]Education, 0, len(edu))
	for _, item := range edu {
		out.Education = append(out.Education, normalizeEducation(item))
	}

	projects := firstObjects(raw, projectKeys)
	out.Projects = make([]Project, 0, len(projects))
	for _, item := range projects {
		out.Projects = append(out.Projects, normalizeProject(item))
	}

	return out
}

// DecodeResume parses JSON text and normalizes it.
func DecodeResume(data []byte) (NormalizedResume, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return NormalizedResume{}, errors.Join(ErrNotObject, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return NormalizedResume{}, ErrNotObject
	}
	return Normalize(obj), nil
}

// AsMap renders the record with its canonical keys as a generic map.
func (r NormalizedResume) AsMap() map[string]any {
	data, err := json.Marshal(r)
	if err != nil {
		return map[string]any{}
	}
	out := map[string]any{}
	if err := json.Unmarshal(data, &out); err != nil {
		return map[string]any{}
	}
	return out
}

func normalizePersonalInfo(raw map[string]any) PersonalInfo {
	var container map[string]any
	for _, key := range personalInfoContainers {
		if obj, ok := raw[key].(map[string]any); ok {
			container = obj
			break
		}
	}
	var info PersonalInfo
	for _, rule := range personalInfoRules {
		v := firstScalar(container, rule.keys)
		if v == "" {
			v = firstScalar(raw, rule.keys)
		}
		rule.set(&info, v)
	}
	return info
}

func normalizeSkills(raw map[string]any) Skills {
	skills := Skills{}
	for _, key := range skillsContainers {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if obj, isObj := v.(map[string]any); isObj {
			for _, rule := range skillsRules {
				*rule.slot(&skills) = firstList(obj, rule.keys)
			}
		} else {
			// Legacy shape: a flat list or comma string of skills.
			skills.Technical = stringList(v)
		}
		break
	}
	for _, rule := range skillsTopLevelRules {
		if slot := rule.slot(&skills); len(*slot) == 0 {
			*slot = firstList(raw, rule.keys)
		}
	}
	return skills.withDefaults()
}

func (s Skills) withDefaults() Skills {
	s.Technical = nonNil(s.Technical)
	s.Soft = nonNil(s.Soft)
	s.Tools = nonNil(s.Tools)
	s.Certifications = nonNil(s.Certifications)
	return s
}

func normalizeWork(item map[string]any) WorkExperience {
	var w WorkExperience
	applyScalarRules(&w, item, workExperienceRules)
	applyListRules(&w, item, workExperienceListRules)
	if w.Duration == "" {
		w.Duration = joinRange(
			firstScalar(item, []string{"startDate", "start_date", "from"}),
			firstScalar(item, []string{"endDate", "end_date", "to"}),
		)
	}
	w.Technologies = nonNil(w.Technologies)
	return w
}

func normalizeEducation(item map[string]any) Education {
	var e Education
	applyScalarRules(&e, item, educationRules)
	if e.Duration == "" {
		e.Duration = joinRange(
			firstScalar(item, []string{"startDate", "start_date", "from"}),
			firstScalar(item, []string{"endDate", "end_date", "to"}),
		)
	}
	return e
}

func normalizeProject(item map[string]any) Project {
	var p Project
	applyScalarRules(&p, item, projectRules)
	applyListRules(&p, item, projectListRules)
	p.Technologies = nonNil(p.Technologies)
	return p
}

func applyScalarRules[T any](dst *T, src map[string]any, rules []scalarRule[T]) {
	for _, rule := range rules {
		rule.set(dst, firstScalar(src, rule.keys))
	}
}

func applyListRules[T any](dst *T, src map[string]any, rules []listRule[T]) {
	for _, rule := range rules {
		rule.set(dst, firstList(src, rule.keys))
	}
}

func joinRange(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start + " - Present"
	default:
		return end
	}
}

func firstScalar(m map[string]any, keys []string) string {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if s := scalarString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func firstList(m map[string]any, keys []string) []string {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if list := stringList(v); len(list) > 0 {
				return list
			}
		}
	}
	return []string{}
}

func firstObjects(m map[string]any, keys []string) []map[string]any {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if list := objectList(v); len(list) > 0 {
				return list
			}
		}
	}
	return nil
}

// scalarString renders a JSON value as trimmed text. Objects yield "".
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case []string:
		return strings.Join(cleanStrings(t), ", ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, el := range t {
			if _, nested := el.([]any); nested {
				continue
			}
			if s := scalarString(el); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

func stringList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, el := range t {
			if s := scalarString(el); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return cleanStrings(t)
	case string:
		return cleanStrings(strings.Split(t, ","))
	default:
		return []string{}
	}
}

func objectList(v any) []map[string]any {
	switch t := v.(type) {
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, el := range t {
			if obj, ok := el.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out
	case []map[string]any:
		return t
	case map[string]any:
		return []map[string]any{t}
	default:
		return nil
	}
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
