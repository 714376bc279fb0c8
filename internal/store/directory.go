package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/kenziemed/medclient/internal/config"
	"github.com/kenziemed/medclient/internal/models"
	"github.com/kenziemed/medclient/internal/observability"
	"github.com/kenziemed/medclient/internal/utils"
	"go.uber.org/zap"
)

// FetchDoctors loads or refreshes the doctor directory. The first load
// (empty directory) toggles the loading flag; refreshes do not. On
// failure the previous directory is kept. Responses are sequence-tagged
// so a stale response never overwrites a newer one.
func (s *Store) FetchDoctors(ctx context.Context) error {
	ctx, _, done := utils.TraceStoreOperation(ctx, "fetch_doctors")
	defer done()

	s.mu.Lock()
	firstLoad := len(s.doctors) == 0
	s.fetchSeq++
	seq := s.fetchSeq
	if firstLoad {
		s.loading = true
	}
	s.mu.Unlock()

	kind := "refresh"
	if firstLoad {
		kind = "first_load"
	}

	doctors, err := s.api.ListDoctors(ctx)
	if err != nil {
		if firstLoad {
			s.setLoading(false)
		}
		observability.DirectoryFetches.WithLabelValues(kind, "error").Inc()
		s.notifier.Error(msgTryAgain)
		return fmt.Errorf("directory fetch failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if firstLoad {
		s.loading = false
	}

	if seq <= s.appliedSeq {
		// A newer fetch already landed; this response is stale
		observability.DirectoryFetchesDiscarded.Inc()
		s.logger.Debug("discarding stale directory response",
			zap.Uint64("seq", seq),
			zap.Uint64("applied_seq", s.appliedSeq))
		return nil
	}
	s.appliedSeq = seq
	s.doctors = doctors

	// Keep the filtered view consistent with the new directory
	if s.filterInput == "" {
		s.filtered = append([]models.Doctor(nil), doctors...)
	} else {
		s.filtered = s.filterLocked(s.filterInput)
	}

	observability.DirectoryFetches.WithLabelValues(kind, "success").Inc()
	s.logger.Info("doctor directory updated", zap.Int("count", len(doctors)))

	return nil
}

// Filter recomputes the filtered view from the current directory and
// the given free-text specialty query. It is synchronous, pure with
// respect to the directory, and order-preserving. An empty query
// matches everything. When nothing matches, the configured policy
// decides between falling back to the full directory and an empty view.
func (s *Store) Filter(input string) []models.Doctor {
	s.mu.Lock()
	s.filterInput = input
	matches := s.filterLocked(input)
	noMatch := len(matches) == 0 && len(s.doctors) > 0
	if noMatch {
		if s.noMatchPolicy == config.NoMatchShowEmpty {
			s.filtered = []models.Doctor{}
		} else {
			s.filtered = append([]models.Doctor(nil), s.doctors...)
		}
	} else {
		s.filtered = matches
	}
	view := append([]models.Doctor(nil), s.filtered...)
	s.mu.Unlock()

	if noMatch {
		observability.FilterMisses.Inc()
		s.notifier.Error(msgSpecialtyNotFound)
	}

	return view
}

// filterLocked computes the specialty matches. Callers hold s.mu.
func (s *Store) filterLocked(input string) []models.Doctor {
	query := strings.ToLower(input)
	matches := make([]models.Doctor, 0, len(s.doctors))
	for _, doctor := range s.doctors {
		if strings.Contains(strings.ToLower(doctor.Specialty), query) {
			matches = append(matches, doctor)
		}
	}
	return matches
}

// SelectDoctor marks a doctor for booking and loads their schedule
func (s *Store) SelectDoctor(ctx context.Context, doctor models.Doctor) error {
	ctx, _, done := utils.TraceStoreOperation(ctx, "select_doctor")
	defer done()

	s.mu.Lock()
	selected := doctor
	s.selectedDoctor = &selected
	s.mu.Unlock()

	slots, err := s.api.ListDoctorSchedule(ctx, doctor.ID)
	if err != nil {
		s.notifier.Error(msgTryAgain)
		return fmt.Errorf("schedule fetch failed: %w", err)
	}

	s.mu.Lock()
	s.schedule = slots
	s.mu.Unlock()

	return nil
}

// FetchAppointments loads the signed-in user's appointment list
func (s *Store) FetchAppointments(ctx context.Context) error {
	ctx, _, done := utils.TraceStoreOperation(ctx, "fetch_appointments")
	defer done()

	s.mu.RLock()
	session := s.session
	s.mu.RUnlock()

	if !session.IsAuthenticated {
		return models.ErrNotAuthenticated
	}

	appointments, err := s.api.ListAppointments(ctx, session.Token, session.UserID)
	if err != nil {
		s.notifier.Error(msgTryAgain)
		return fmt.Errorf("appointment fetch failed: %w", err)
	}

	s.mu.Lock()
	s.appointments = appointments
	s.mu.Unlock()

	return nil
}
