package grading

// Grade 成绩页展示用的五档评级
type Grade string

const (
	GradeExcellent Grade = "Excellent"
	GradeGood      Grade = "Good"
	GradePass      Grade = "Pass"
	GradeAtRisk    Grade = "At Risk"
	GradeFail      Grade = "Fail"
)

// GradeLetterForPercentage 百分比到评级，对任意输入都有定义（NaN 落到 Fail）
func GradeLetterForPercentage(pct float64) Grade {
	switch {
	case pct >= 80:
		return GradeExcellent
	case pct >= 70:
		return GradeGood
	case pct >= 50:
		return GradePass
	case pct >= 40:
		return GradeAtRisk
	default:
		return GradeFail
	}
}
