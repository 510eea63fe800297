// Package ml is the client for the external GPA prediction service.
package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/campuscare/health-api/model"
)

const requestTimeout = 10 * time.Second

// Features is the fixed-shape payload sent to the prediction service.
// student_id is carried for tracking only, not as a model feature.
type Features struct {
	StudentID          uint    `json:"student_id"`
	UniName            string  `json:"uni_name"`
	Major              string  `json:"major"`
	Disability         bool    `json:"disability"`
	DOB                string  `json:"dob"`
	AcademicYear       int     `json:"academic_year"`
	StudyHours         float64 `json:"study_hours"`
	AthleticStatus     string  `json:"athletic_status"`
	CountryOfOrigin    string  `json:"country_of_origin"`
	CountryOfResidence string  `json:"country_of_residence"`
	PrimaryLanguage    string  `json:"primary_language"`
	Gender             string  `json:"gender"`
	Dropout            bool    `json:"dropout"`
}

// BuildFeatures maps a stored student profile to the prediction payload,
// substituting defaults for unset fields.
func BuildFeatures(info model.StudentInfo) Features {
	f := Features{
		StudentID:          info.StudentID,
		UniName:            orUnknown(info.UniName),
		Major:              orUnknown(info.Major),
		DOB:                info.DOB,
		AcademicYear:       1,
		AthleticStatus:     info.AthleticStatus,
		CountryOfOrigin:    orUnknown(info.CountryOfOrigin),
		CountryOfResidence: orUnknown(info.CountryOfResidence),
		PrimaryLanguage:    orUnknown(info.PrimaryLanguage),
		Gender:             orUnknown(info.Gender),
		Dropout:            false,
	}
	if info.Disability != nil {
		f.Disability = *info.Disability
	}
	if info.DOB == "" {
		f.DOB = "2000-01-01"
	}
	if info.AcademicYear != nil {
		f.AcademicYear = *info.AcademicYear
	}
	if info.StudyHours != nil {
		f.StudyHours = *info.StudyHours
	}
	if info.AthleticStatus == "" {
		f.AthleticStatus = "Inactive"
	}
	return f
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// Client talks to the prediction service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client for the prediction service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Predict sends the feature payload in a single synchronous request and
// returns the decoded response body. Transport failures and non-2xx
// statuses are returned as errors; no retry is attempted.
func (c *Client) Predict(ctx context.Context, features Features) (map[string]interface{}, error) {
	body, err := json.Marshal(features)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/predict", c.baseURL), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("prediction service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("prediction service returned status %d: %s", resp.StatusCode, raw)
	}

	var prediction map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, fmt.Errorf("failed to decode prediction response: %w", err)
	}
	return prediction, nil
}
