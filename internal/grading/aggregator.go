package grading

import (
	"sort"
	"strings"
)

// AssessmentType 考核类别（模块成绩的三条轨道）
type AssessmentType string

const (
	Exam       AssessmentType = "exam"
	Practical  AssessmentType = "practical"
	Assignment AssessmentType = "assignment"
)

// ParseAssessmentType 将任意字符串映射到已知类别，无法识别时 ok 为 false
func ParseAssessmentType(s string) (AssessmentType, bool) {
	t := AssessmentType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

func (t AssessmentType) Valid() bool {
	switch t {
	case Exam, Practical, Assignment:
		return true
	}
	return false
}

type PassStatus string

const (
	StatusPassed     PassStatus = "passed"
	StatusFailed     PassStatus = "failed"
	StatusIncomplete PassStatus = "incomplete"
)

// PassThreshold 通过线：200 分制下的 70 分
const PassThreshold = 70.0

// AssessmentRecord 单次考核成绩
type AssessmentRecord struct {
	StudentID      string         `json:"studentId"`
	ModuleID       string         `json:"moduleId"`
	AssessmentID   string         `json:"assessmentId"`
	AssessmentType AssessmentType `json:"assessmentType"`
	Score          float64        `json:"score"`
	MaxScore       float64        `json:"maxScore"`
}

// ModuleCompletionSummary 学生在某模块下的成绩汇总，每次按需重新计算，不作为数据源持久化
type ModuleCompletionSummary struct {
	ExamScore            float64    `json:"examScore"`
	ExamMaxScore         float64    `json:"examMaxScore"`
	PracticalScore       float64    `json:"practicalScore"`
	PracticalMaxScore    float64    `json:"practicalMaxScore"`
	AssignmentScore      float64    `json:"assignmentScore"`
	AssignmentMaxScore   float64    `json:"assignmentMaxScore"`
	ExamPercentage       float64    `json:"examPercentage"`
	PracticalPercentage  float64    `json:"practicalPercentage"`
	AssignmentPercentage float64    `json:"assignmentPercentage"`
	TotalPercentage      float64    `json:"totalPercentage"`
	PassStatus           PassStatus `json:"passStatus"`
	IsComplete           bool       `json:"isComplete"`
}

// ComputeModuleCompletion 汇总一个学生在一个模块下的全部考核记录。
//
// 调用方负责按 studentId/moduleId 预先过滤；无法识别类别的记录直接忽略。
// 总分 = 考试百分比 + max(实践百分比, 作业百分比)，满分 200，通过线 70。
// 只有考试轨道加上实践或作业轨道都有成绩且总分过线才算 passed；
// 不校验 score <= maxScore，超出的分数会如实抬高百分比。
func ComputeModuleCompletion(records []AssessmentRecord) ModuleCompletionSummary {
	var exam, practical, assignment track
	for _, r := range records {
		switch r.AssessmentType {
		case Exam:
			exam.add(r)
		case Practical:
			practical.add(r)
		case Assignment:
			assignment.add(r)
		}
	}

	var s ModuleCompletionSummary
	s.ExamScore, s.ExamMaxScore = exam.totals()
	s.PracticalScore, s.PracticalMaxScore = practical.totals()
	s.AssignmentScore, s.AssignmentMaxScore = assignment.totals()

	s.ExamPercentage = percentage(s.ExamScore, s.ExamMaxScore)
	s.PracticalPercentage = percentage(s.PracticalScore, s.PracticalMaxScore)
	s.AssignmentPercentage = percentage(s.AssignmentScore, s.AssignmentMaxScore)

	best := s.PracticalPercentage
	if s.AssignmentPercentage > best {
		best = s.AssignmentPercentage
	}
	s.TotalPercentage = s.ExamPercentage + best

	hasExam := s.ExamMaxScore > 0
	hasPractical := s.PracticalMaxScore > 0
	hasAssignment := s.AssignmentMaxScore > 0

	s.IsComplete = hasExam && (hasPractical || hasAssignment) && s.TotalPercentage >= PassThreshold

	switch {
	case s.IsComplete:
		s.PassStatus = StatusPassed
	case hasExam && hasPractical:
		// 仅作业轨道且未达标时归为 incomplete 而非 failed
		s.PassStatus = StatusFailed
	default:
		s.PassStatus = StatusIncomplete
	}

	return s
}

// track 收集单条轨道的分数，排序后再累加，使结果与记录顺序无关
type track struct {
	scores []float64
	maxes  []float64
}

func (t *track) add(r AssessmentRecord) {
	t.scores = append(t.scores, r.Score)
	t.maxes = append(t.maxes, r.MaxScore)
}

func (t *track) totals() (score, max float64) {
	return sortedSum(t.scores), sortedSum(t.maxes)
}

func sortedSum(values []float64) float64 {
	sort.Float64s(values)
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

func percentage(score, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return score / max * 100
}
