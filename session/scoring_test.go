package session

import "testing"

func answers(correct, wrong int) []Answer {
	var out []Answer
	for i := 0; i < correct; i++ {
		out = append(out, Answer{IsCorrect: true})
	}
	for i := 0; i < wrong; i++ {
		out = append(out, Answer{IsCorrect: false})
	}
	return out
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		correct int
		wrong   int
		want    int
	}{
		{"all correct", 2, 2, 0, 100},
		{"one of four", 4, 1, 3, 25},
		{"none answered", 4, 0, 0, 0},
		{"rounds half up", 3, 1, 2, 33},
		{"two thirds", 3, 2, 1, 67},
		{"one of eight", 8, 1, 7, 13},
		{"zero questions", 0, 0, 0, 0},
		{"partial attempt counts against total", 4, 2, 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.total, answers(tt.correct, tt.wrong))
			if got != tt.want {
				t.Errorf("Score(%d, %d correct) = %d, want %d", tt.total, tt.correct, got, tt.want)
			}
		})
	}
}

func TestCorrectCount(t *testing.T) {
	if got := CorrectCount(answers(3, 2)); got != 3 {
		t.Errorf("CorrectCount = %d, want 3", got)
	}
	if got := CorrectCount(nil); got != 0 {
		t.Errorf("CorrectCount(nil) = %d, want 0", got)
	}
}

func TestIsPassed(t *testing.T) {
	sixty := 60
	tests := []struct {
		name         string
		score        int
		passingScore *int
		want         bool
	}{
		{"default threshold met exactly", 70, nil, true},
		{"default threshold missed", 69, nil, false},
		{"custom threshold met", 60, &sixty, true},
		{"custom threshold missed", 59, &sixty, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPassed(tt.score, tt.passingScore); got != tt.want {
				t.Errorf("IsPassed(%d) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}

// Full attempt flows, from start to score.
func TestAttemptPerfectRun(t *testing.T) {
	s, _ := Start(testQuiz(2), 1)
	s.Answer(0, nil)
	s.Answer(1, nil)

	if !s.Completed {
		t.Fatal("expected completed attempt")
	}
	score := Score(len(s.Questions), s.Answers)
	if score != 100 {
		t.Errorf("expected score 100, got %d", score)
	}
	if !IsPassed(score, nil) {
		t.Error("expected a passing result")
	}
}

func TestAttemptOneOfFour(t *testing.T) {
	s, _ := Start(testQuiz(4), 1)
	s.Answer(0, nil) // correct
	s.Answer(0, nil) // wrong, key is 1
	s.Answer(0, nil) // wrong, key is 2
	s.Answer(0, nil) // wrong, key is 3

	if !s.Completed {
		t.Fatal("expected completed attempt")
	}
	score := Score(len(s.Questions), s.Answers)
	if score != 25 {
		t.Errorf("expected score 25, got %d", score)
	}
	if IsPassed(score, nil) {
		t.Error("expected a failing result")
	}
}
