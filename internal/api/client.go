package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kenziemed/medclient/internal/config"
	"github.com/kenziemed/medclient/internal/logging"
	"github.com/kenziemed/medclient/internal/models"
	"github.com/kenziemed/medclient/internal/observability"
	"github.com/kenziemed/medclient/internal/utils"
	"go.uber.org/zap"
)

// Client talks to the remote KenzieMed service. One instance is shared
// by every store; the timeout is fixed at construction and applies to
// every request.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *logging.SafeLogger
}

// NewClient creates a client bound to the configured base URL and timeout
func NewClient(cfg *config.Config, logger *logging.SafeLogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

// SignIn exchanges credentials for a token and user record
func (c *Client) SignIn(ctx context.Context, credentials models.Credentials) (*models.LoginResponse, error) {
	var response models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login/users", "login", "", credentials, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Register submits a new account profile. The session is not affected;
// registration does not imply sign-in.
func (c *Client) Register(ctx context.Context, input models.RegisterInput) (*models.User, error) {
	var created models.User
	if err := c.do(ctx, http.MethodPost, "/users", "register", "", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProfile replaces the mutable profile fields of the given user.
// The server's returned representation is the source of truth post-edit.
func (c *Client) UpdateProfile(ctx context.Context, id int64, token string, input models.EditProfileInput) (*models.User, error) {
	var updated models.User
	path := "/users/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodPatch, path, "update_profile", token, input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListDoctors fetches the full doctor directory
func (c *Client) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	var doctors []models.Doctor
	if err := c.do(ctx, http.MethodGet, "/doctors", "doctors", "", nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// ListDoctorSchedule fetches the bookable slots for one doctor
func (c *Client) ListDoctorSchedule(ctx context.Context, doctorID int64) ([]models.ScheduleSlot, error) {
	var slots []models.ScheduleSlot
	path := "/schedules?doctorId=" + strconv.FormatInt(doctorID, 10)
	if err := c.do(ctx, http.MethodGet, path, "schedules", "", nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// ListAppointments fetches the authenticated user's appointments
func (c *Client) ListAppointments(ctx context.Context, token, userID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	path := "/appointments?userId=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, "appointments", token, nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// do executes one request against the remote service and decodes the
// response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path, endpoint, token string, body, out interface{}) error {
	ctx, span, done := utils.TraceAPIRequest(ctx, method, path)
	defer done()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("sending request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID))

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		span.RecordError(err)
		observability.APIRequestErrors.WithLabelValues(endpoint, "transport").Inc()
		observability.APIRequestDuration.WithLabelValues(endpoint, method, "error").Observe(time.Since(start).Seconds())
		c.logger.Warn("request failed",
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return &TransportError{Op: endpoint, Err: err}
	}
	defer resp.Body.Close()

	observability.APIRequestDuration.WithLabelValues(endpoint, method, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.APIRequestErrors.WithLabelValues(endpoint, "transport").Inc()
		return &TransportError{Op: endpoint, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode >= 400 {
		observability.APIRequestErrors.WithLabelValues(endpoint, "status").Inc()
		c.logger.Warn("request rejected",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("request_id", requestID))
		return &StatusError{Op: endpoint, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	c.logger.Debug("request completed",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)))

	return nil
}
