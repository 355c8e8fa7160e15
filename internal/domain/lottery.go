package domain

import "time"

// LotteryNumber is issued at most once per user and never revoked.
// Numbers are dense and start at 1 so the digit wheel on the draw screen
// covers the real range without gaps.
type LotteryNumber struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Number    int       `json:"lottery_number"`
	CreatedAt time.Time `json:"created_at"`
}

// DigitRanges bounds the digit wheel shown on the draw screen. It is a
// display affordance; the winner check stays authoritative server-side.
type DigitRanges struct {
	Hundreds []int `json:"hundreds"`
	Tens     []int `json:"tens"`
	Ones     []int `json:"ones"`
}

// NewDigitRanges sizes the hundreds wheel to the participant count.
func NewDigitRanges(participantCount int) DigitRanges {
	hundreds := []int{0, 1}
	if participantCount >= 200 {
		hundreds = append(hundreds, 2, 3, 4)
	}

	return DigitRanges{
		Hundreds: hundreds,
		Tens:     []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		Ones:     []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	}
}

// Winner pairs an issued lottery number with its holder's profile.
type Winner struct {
	EmpNo    string `json:"empno"`
	EmpName  string `json:"empname"`
	DeptName string `json:"deptname"`
	PosName  string `json:"posname"`
	Number   int    `json:"lottery_number"`
}
