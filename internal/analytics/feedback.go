package analytics

import (
	"time"

	"github.com/noah-isme/sma-reporting-api/internal/models"
)

// FeedbackDigest is the latest feedback a student received.
type FeedbackDigest struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	FacultyID string    `json:"facultyId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// StudentFeedbackSummary counts feedback for a student and surfaces the most recent one.
type StudentFeedbackSummary struct {
	TotalFeedback  int             `json:"totalFeedback"`
	LatestFeedback *FeedbackDigest `json:"latestFeedback,omitempty"`
}

// FacultyFeedbackSummary compares feedback given with the students a faculty member teaches.
type FacultyFeedbackSummary struct {
	TotalFeedbackGiven      int     `json:"totalFeedbackGiven"`
	StudentsTaught          int     `json:"studentsTaught"`
	StudentsWithFeedback    int     `json:"studentsWithFeedback"`
	StudentsWithoutFeedback int     `json:"studentsWithoutFeedback"`
	FeedbackPerStudent      float64 `json:"feedbackPerStudent"`
}

// SummarizeStudentFeedback picks the record with the greatest CreatedAt; equal timestamps keep the
// earlier record in input order.
func SummarizeStudentFeedback(records []models.FeedbackRecord) StudentFeedbackSummary {
	out := StudentFeedbackSummary{TotalFeedback: len(records)}
	var latest *models.FeedbackRecord
	for i := range records {
		if latest == nil || records[i].CreatedAt.After(latest.CreatedAt) {
			latest = &records[i]
		}
	}
	if latest != nil {
		out.LatestFeedback = &FeedbackDigest{
			ID:        latest.ID,
			TaskID:    latest.TaskID,
			FacultyID: latest.FacultyID,
			Content:   latest.Content,
			CreatedAt: latest.CreatedAt,
		}
	}
	return out
}

// SummarizeFacultyFeedback derives the taught roster from the faculty's assignment rows.
func SummarizeFacultyFeedback(records []models.FeedbackRecord, rows []models.AssignmentRow) FacultyFeedbackSummary {
	taught := DistinctStudents(rows)
	received := make(map[string]struct{}, len(records))
	for _, r := range records {
		received[r.StudentID] = struct{}{}
	}
	out := FacultyFeedbackSummary{TotalFeedbackGiven: len(records), StudentsTaught: len(taught)}
	for _, studentID := range taught {
		if _, ok := received[studentID]; ok {
			out.StudentsWithFeedback++
		} else {
			out.StudentsWithoutFeedback++
		}
	}
	out.FeedbackPerStudent = Round2(SafeRatio(float64(out.TotalFeedbackGiven), float64(out.StudentsTaught)))
	return out
}
