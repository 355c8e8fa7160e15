package domain

import "time"

type User struct {
	ID          uint      `json:"id"`
	EmpNo       string    `json:"empno"`
	EmpName     string    `json:"empname"`
	DeptName    string    `json:"deptname"`
	PosName     string    `json:"posname"`
	PhoneLast   string    `json:"-"`
	TokenSecret string    `json:"-"`
	Deleted     bool      `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Profile is the subset of User returned to clients.
type Profile struct {
	EmpNo    string `json:"empno"`
	EmpName  string `json:"empname"`
	DeptName string `json:"deptname"`
	PosName  string `json:"posname"`
}

func (u User) Profile() Profile {
	return Profile{
		EmpNo:    u.EmpNo,
		EmpName:  u.EmpName,
		DeptName: u.DeptName,
		PosName:  u.PosName,
	}
}

type Admin struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
