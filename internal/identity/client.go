// Package identity talks to the corporate directory that vouches for an
// employee number / phone-fragment pair. The contract is thin: the
// directory either returns the employee's profile or a rejection message.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/techforum/engagement-api/internal/config"
)

var (
	// ErrRejected means the directory answered and said no. The wrapped
	// message is safe to surface to the user.
	ErrRejected = errors.New("identity verification rejected")

	// ErrUnavailable means the directory could not be reached or answered
	// with something unusable.
	ErrUnavailable = errors.New("identity service unavailable")
)

const defaultTimeout = 10 * time.Second

type Employee struct {
	EmpNo    string `json:"empno"`
	EmpName  string `json:"empname"`
	DeptName string `json:"deptname"`
	PosName  string `json:"posname"`
}

type verifyRequest struct {
	Job        string `json:"job"`
	EmpNo      string `json:"searchEmp"`
	LastNumber string `json:"lastNumber"`
}

type verifyResponse struct {
	Data struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Employee
	} `json:"data"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(conf *config.IdentityConfig) *Client {
	timeout := defaultTimeout
	if conf.TimeoutSeconds > 0 {
		timeout = time.Duration(conf.TimeoutSeconds) * time.Second
	}

	return &Client{
		baseURL: conf.BaseURL,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Verify checks an employee number against the last four digits of their
// registered phone number.
func (c *Client) Verify(ctx context.Context, empNo, lastNumber string) (Employee, error) {
	body, err := json.Marshal(verifyRequest{
		Job:        "searchEmpCert",
		EmpNo:      empNo,
		LastNumber: lastNumber,
	})
	if err != nil {
		return Employee{}, fmt.Errorf("json.Marshal -> %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return Employee{}, fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Employee{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var parsed verifyResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Employee{}, fmt.Errorf("%w: malformed response", ErrUnavailable)
	}

	switch parsed.Data.Status {
	case "success":
		if parsed.Data.EmpNo == "" || parsed.Data.EmpName == "" {
			return Employee{}, fmt.Errorf("%w: incomplete employee record", ErrUnavailable)
		}

		return parsed.Data.Employee, nil
	case "fail":
		msg := parsed.Data.Message
		if msg == "" {
			msg = "verification code mismatch"
		}

		return Employee{}, fmt.Errorf("%w: %s", ErrRejected, msg)
	default:
		return Employee{}, fmt.Errorf("%w: unexpected status %q", ErrUnavailable, parsed.Data.Status)
	}
}
