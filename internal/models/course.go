package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Degree-requirement categories carried verbatim from the university
// catalog. Pools are filtered and balanced on these labels.
const (
	CategoryMajorRequired      = "전공필수"
	CategoryMajorElective      = "전공선택"
	CategoryMajorFoundation    = "전공기초"
	CategoryGeneralRequired    = "교양필수"
	CategoryGeneralElective    = "교양선택"
	CategoryFreeElective       = "일반선택"
	CategoryTeacherPreparation = "교직"
)

// Categories lists every known category label.
var Categories = []string{
	CategoryMajorRequired,
	CategoryMajorElective,
	CategoryMajorFoundation,
	CategoryGeneralRequired,
	CategoryGeneralElective,
	CategoryFreeElective,
	CategoryTeacherPreparation,
}

// CourseRow is a raw catalog record as stored.
type CourseRow struct {
	CourseID     string `db:"course_id" json:"course_id"`
	CourseName   string `db:"course_name" json:"course_name"`
	CourseCode   string `db:"course_code" json:"course_code"`
	Credit       int    `db:"credit" json:"credit"`
	ScheduleTime string `db:"schedule_time" json:"schedule_time"`
	Classroom    string `db:"classroom" json:"classroom"`
	Category     string `db:"category" json:"category"`
	DepartmentID string `db:"department_id" json:"department_id"`
}

// CourseFilter narrows catalog reads.
type CourseFilter struct {
	DepartmentIDs []string
	Categories    []string
}

// CandidateCourse is a catalog course prepared for generation: raw schedule
// string already parsed into slots. Immutable during generation.
type CandidateCourse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Code        string     `json:"code"`
	Credit      int        `json:"credit"`
	Category    string     `json:"category"`
	RawSchedule string     `json:"raw_schedule"`
	Slots       []TimeSlot `json:"slots"`
	Location    string     `json:"location"`
}

// courseFieldAliases maps heterogeneous upstream keys onto canonical ones.
// External generators occasionally answer with Korean field names; the
// normalisation happens here, once, at the system boundary.
var courseFieldAliases = map[string]string{
	"과목_아이디": "course_id",
	"과목_이름":  "course_name",
	"과목_코드":  "course_code",
	"학점":     "credit",
	"강의_시간":  "schedule_time",
	"강의실":    "classroom",
	"이수_구분":  "category",
	"학과_아이디": "department_id",
	"name":   "course_name",
	"code":   "course_code",
	"room":   "classroom",
	"id":     "course_id",
}

// NormalizeCourseRecord maps a loosely-keyed record into a CourseRow.
// Unknown keys are ignored; numeric credits survive both string and number
// encodings. Internal components never see the raw key variants.
func NormalizeCourseRecord(raw map[string]any) CourseRow {
	flat := make(map[string]any, len(raw))
	for key, value := range raw {
		canonical := strings.ToLower(strings.TrimSpace(key))
		if alias, ok := courseFieldAliases[canonical]; ok {
			canonical = alias
		}
		if _, taken := flat[canonical]; !taken {
			flat[canonical] = value
		}
	}

	return CourseRow{
		CourseID:     stringField(flat, "course_id"),
		CourseName:   stringField(flat, "course_name"),
		CourseCode:   stringField(flat, "course_code"),
		Credit:       intField(flat, "credit"),
		ScheduleTime: stringField(flat, "schedule_time"),
		Classroom:    stringField(flat, "classroom"),
		Category:     stringField(flat, "category"),
		DepartmentID: stringField(flat, "department_id"),
	}
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}
