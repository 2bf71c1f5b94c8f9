package analytics

import "github.com/noah-isme/sma-reporting-api/internal/models"

// StudentQuizSummary describes one student's quiz activity.
type StudentQuizSummary struct {
	QuizzesAvailable  int     `json:"quizzesAvailable"`
	QuizzesAttempted  int     `json:"quizzesAttempted"`
	TotalAttempts     int     `json:"totalAttempts"`
	AverageScore      float64 `json:"averageScore"`
	HighestScore      float64 `json:"highestScore"`
	LowestScore       float64 `json:"lowestScore"`
	AveragePercentage float64 `json:"averagePercentage"`
}

// FacultyQuizSummary describes the quizzes one faculty member published.
type FacultyQuizSummary struct {
	TotalQuizzes      int     `json:"totalQuizzes"`
	TotalAttempts     int     `json:"totalAttempts"`
	AverageScore      float64 `json:"averageScore"`
	AveragePercentage float64 `json:"averagePercentage"`
	DistinctStudents  int     `json:"distinctStudents"`
}

func quizIndex(quizzes []models.Quiz) map[string]models.Quiz {
	index := make(map[string]models.Quiz, len(quizzes))
	for _, q := range quizzes {
		index[q.ID] = q
	}
	return index
}

// attemptPercentage uses the attempt's own total, falling back to the quiz total. ok is false when
// neither is positive.
func attemptPercentage(a models.QuizAttemptRecord, quiz models.Quiz) (float64, bool) {
	total := a.TotalMarks
	if total <= 0 {
		total = quiz.TotalMarks
	}
	if total <= 0 {
		return 0, false
	}
	return rawPercentage(a.Score, total), true
}

type attemptStats struct {
	scores      Stats
	percentages Stats
	quizzes     int
	students    int
	attempts    int
}

func describeAttempts(index map[string]models.Quiz, attempts []models.QuizAttemptRecord) attemptStats {
	scores := make([]float64, 0, len(attempts))
	percentages := make([]float64, 0, len(attempts))
	quizzes := map[string]struct{}{}
	students := map[string]struct{}{}
	for _, a := range attempts {
		quiz, ok := index[a.QuizID]
		if !ok {
			continue
		}
		scores = append(scores, a.Score)
		if pct, ok := attemptPercentage(a, quiz); ok {
			percentages = append(percentages, pct)
		}
		quizzes[a.QuizID] = struct{}{}
		students[a.StudentID] = struct{}{}
	}
	return attemptStats{
		scores:      Describe(scores),
		percentages: Describe(percentages),
		quizzes:     len(quizzes),
		students:    len(students),
		attempts:    len(scores),
	}
}

// SummarizeStudentQuizzes compares the quizzes available to a student with their attempts. Attempts on
// quizzes outside the available set are ignored.
func SummarizeStudentQuizzes(quizzes []models.Quiz, attempts []models.QuizAttemptRecord) StudentQuizSummary {
	stats := describeAttempts(quizIndex(quizzes), attempts)
	return StudentQuizSummary{
		QuizzesAvailable:  len(quizzes),
		QuizzesAttempted:  stats.quizzes,
		TotalAttempts:     stats.attempts,
		AverageScore:      Round2(stats.scores.Mean),
		HighestScore:      stats.scores.Max,
		LowestScore:       stats.scores.Min,
		AveragePercentage: Round2(stats.percentages.Mean),
	}
}

// SummarizeFacultyQuizzes rolls up attempts across a faculty member's quizzes.
func SummarizeFacultyQuizzes(quizzes []models.Quiz, attempts []models.QuizAttemptRecord) FacultyQuizSummary {
	stats := describeAttempts(quizIndex(quizzes), attempts)
	return FacultyQuizSummary{
		TotalQuizzes:      len(quizzes),
		TotalAttempts:     stats.attempts,
		AverageScore:      Round2(stats.scores.Mean),
		AveragePercentage: Round2(stats.percentages.Mean),
		DistinctStudents:  stats.students,
	}
}

// QuizIDs lists quiz ids for attempt lookups.
func QuizIDs(quizzes []models.Quiz) []string {
	ids := make([]string, len(quizzes))
	for i, q := range quizzes {
		ids[i] = q.ID
	}
	return ids
}
