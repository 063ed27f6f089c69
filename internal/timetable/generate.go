package timetable

import (
	"fmt"
	"sort"

	"github.com/uniplan/uniplan-api/internal/models"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
)

// GenerateOptions bounds automatic plan construction. The credit ceiling is
// deliberately tighter than the interactive add limit.
type GenerateOptions struct {
	MaxCredits    int
	TargetCredits int
	ExcludeIDs    map[string]struct{}
}

func (o GenerateOptions) withDefaults() GenerateOptions {
	if o.MaxCredits <= 0 {
		o.MaxCredits = 18
	}
	if o.TargetCredits <= 0 {
		o.TargetCredits = 15
	}
	return o
}

type strategy struct {
	name        string
	tag         string
	description string
	build       func(pool []models.CandidateCourse, opts GenerateOptions) []models.CandidateCourse
}

var strategies = []strategy{
	{
		name:        "최대 학점형",
		tag:         "max-credit",
		description: "학점이 높은 과목부터 채워 한 학기를 꽉 채우는 조합",
		build:       maxCreditPlan,
	},
	{
		name:        "균형 분배형",
		tag:         "category-balanced",
		description: "이수 구분별로 골고루 한 과목씩 배치한 조합",
		build:       categoryBalancedPlan,
	},
	{
		name:        "아침형",
		tag:         "earliest-time",
		description: "이른 시간대 과목을 우선 배치한 조합",
		build:       earliestTimePlan,
	},
}

// GeneratePlans assembles up to three conflict-free timetable candidates
// from the pool, one per selection strategy. Deterministic: no randomness,
// stable sorts, stable tiebreaks. Strategies that accept zero courses are
// omitted. Candidates without parsed slots are skipped up front.
func GeneratePlans(pool []models.CandidateCourse, opts GenerateOptions) []models.GeneratedSchedule {
	opts = opts.withDefaults()
	usable := make([]models.CandidateCourse, 0, len(pool))
	for _, course := range pool {
		if _, excluded := opts.ExcludeIDs[course.ID]; excluded {
			continue
		}
		if len(course.Slots) == 0 || course.Credit <= 0 {
			continue
		}
		usable = append(usable, course)
	}

	schedules := make([]models.GeneratedSchedule, 0, len(strategies))
	for _, s := range strategies {
		picked := s.build(usable, opts)
		if len(picked) == 0 {
			continue
		}
		schedules = append(schedules, wrapPlan(s, picked))
	}
	return schedules
}

// ValidatePlan re-checks a candidate timetable against the generator's hard
// constraints. Externally produced schedules are never trusted; they pass
// through here before being offered.
func ValidatePlan(schedule models.GeneratedSchedule, maxCredits int) error {
	if maxCredits <= 0 {
		maxCredits = 18
	}
	if len(schedule.Courses) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "schedule contains no courses")
	}
	if conflicts := FindAllConflicts(schedule.Courses); len(conflicts) > 0 {
		first := conflicts[0]
		return appErrors.Clone(appErrors.ErrTimeConflict, fmt.Sprintf(
			"%s overlaps %s on %s", first.CourseA, first.CourseB, first.Day,
		))
	}
	if total := TotalDistinctCredits(schedule.Courses); total > maxCredits {
		return appErrors.Clone(appErrors.ErrCreditOverflow, fmt.Sprintf(
			"schedule carries %d credits, over the %d credit generation limit", total, maxCredits,
		))
	}
	return nil
}

// planBuilder holds the shared greedy accept state: a course joins the plan
// iff none of its slots overlap an accepted slot and the running
// distinct-code credit total stays within the ceiling.
type planBuilder struct {
	opts     GenerateOptions
	accepted []models.CandidateCourse
	credits  int
	codes    map[string]struct{}
}

func newPlanBuilder(opts GenerateOptions) *planBuilder {
	return &planBuilder{opts: opts, codes: make(map[string]struct{})}
}

func (b *planBuilder) canAccept(course models.CandidateCourse) bool {
	if b.credits+course.Credit > b.opts.MaxCredits {
		return false
	}
	if _, dup := b.codes[course.Code]; dup {
		return false
	}
	for _, placed := range b.accepted {
		for _, have := range placed.Slots {
			for _, want := range course.Slots {
				if Overlaps(have, want) {
					return false
				}
			}
		}
	}
	return true
}

func (b *planBuilder) accept(course models.CandidateCourse) {
	b.accepted = append(b.accepted, course)
	b.credits += course.Credit
	b.codes[course.Code] = struct{}{}
}

// maxCreditPlan greedily takes the highest-credit courses first.
func maxCreditPlan(pool []models.CandidateCourse, opts GenerateOptions) []models.CandidateCourse {
	sorted := make([]models.CandidateCourse, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Credit == sorted[j].Credit {
			return sorted[i].Code < sorted[j].Code
		}
		return sorted[i].Credit > sorted[j].Credit
	})
	return greedyFill(sorted, opts)
}

// earliestTimePlan prefers courses whose raw schedule string sorts first, a
// lexicographic proxy for chronological order.
func earliestTimePlan(pool []models.CandidateCourse, opts GenerateOptions) []models.CandidateCourse {
	sorted := make([]models.CandidateCourse, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RawSchedule == sorted[j].RawSchedule {
			return sorted[i].Code < sorted[j].Code
		}
		return sorted[i].RawSchedule < sorted[j].RawSchedule
	})
	return greedyFill(sorted, opts)
}

func greedyFill(ordered []models.CandidateCourse, opts GenerateOptions) []models.CandidateCourse {
	builder := newPlanBuilder(opts)
	for _, course := range ordered {
		if builder.credits >= opts.TargetCredits {
			break
		}
		if builder.canAccept(course) {
			builder.accept(course)
		}
	}
	return builder.accepted
}

// categoryBalancedPlan round-robins one acceptable course per category
// (categories in first-seen pool order) until no category yields progress.
func categoryBalancedPlan(pool []models.CandidateCourse, opts GenerateOptions) []models.CandidateCourse {
	var order []string
	buckets := make(map[string][]models.CandidateCourse)
	for _, course := range pool {
		if _, ok := buckets[course.Category]; !ok {
			order = append(order, course.Category)
		}
		buckets[course.Category] = append(buckets[course.Category], course)
	}

	builder := newPlanBuilder(opts)
	taken := make(map[string]struct{})
	for {
		progressed := false
		for _, category := range order {
			for _, course := range buckets[category] {
				if _, ok := taken[course.ID]; ok {
					continue
				}
				if !builder.canAccept(course) {
					continue
				}
				builder.accept(course)
				taken[course.ID] = struct{}{}
				progressed = true
				break
			}
		}
		if !progressed {
			break
		}
	}
	return builder.accepted
}

func wrapPlan(s strategy, picked []models.CandidateCourse) models.GeneratedSchedule {
	courses := make([]models.ScheduleCourse, 0, len(picked))
	for _, course := range picked {
		for i, slot := range course.Slots {
			courses = append(courses, models.ScheduleCourse{
				ID:        fmt.Sprintf("%s-%s-%d", s.tag, course.ID, i),
				Name:      course.Name,
				Code:      course.Code,
				Day:       slot.Day,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
				Location:  course.Location,
				Credit:    course.Credit,
			})
		}
	}
	return models.GeneratedSchedule{
		Name:         s.name,
		Tags:         []string{s.tag},
		Description:  s.description,
		Courses:      courses,
		TotalCredits: TotalDistinctCredits(courses),
	}
}
