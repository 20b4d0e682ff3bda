package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"dsatracker/backend/dbctx"
	"dsatracker/backend/engine"
	"dsatracker/backend/models"
	"dsatracker/backend/repository"
	"dsatracker/backend/utils"
)

type Options struct {
	Calendar     *engine.Calendar
	Cache        LeaderboardCache
	Metrics      *Metrics
	StoreTimeout time.Duration
	Logger       *utils.Logger
}

// TrackerService owns the topic update pipeline and the read models built on top of it.
type TrackerService struct {
	db       *gorm.DB
	users    repository.UserRepo
	topics   repository.TopicRepo
	activity repository.ActivityRepo
	badges   repository.BadgeRepo

	cal          *engine.Calendar
	cache        LeaderboardCache
	metrics      *Metrics
	storeTimeout time.Duration
	log          *utils.Logger

	locks *userLocks
	group singleflight.Group
}

func NewTrackerService(db *gorm.DB, opts Options) *TrackerService {
	if opts.Logger == nil {
		opts.Logger = utils.NopLogger()
	}
	if opts.Calendar == nil {
		opts.Calendar = engine.MustCalendar("+05:30")
	}
	if opts.Cache == nil {
		opts.Cache = NoopCache{}
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics(prometheus.NewRegistry())
	}
	log := opts.Logger.With("service", "TrackerService")

	return &TrackerService{
		db:           db,
		users:        repository.NewUserRepo(db, log),
		topics:       repository.NewTopicRepo(db, log),
		activity:     repository.NewActivityRepo(db, log),
		badges:       repository.NewBadgeRepo(db, log),
		cal:          opts.Calendar,
		cache:        opts.Cache,
		metrics:      opts.Metrics,
		storeTimeout: opts.StoreTimeout,
		log:          log,
		locks:        newUserLocks(),
	}
}

func (s *TrackerService) Calendar() *engine.Calendar {
	return s.cal
}

func (s *TrackerService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}

// UpdateTopicField sets one sub-metric of a topic and runs the derived-state pipeline:
// progress, the day's activity counter, streak and points, then badges. Everything but
// the badges commits or rolls back together; a badge failure is logged and skipped.
func (s *TrackerService) UpdateTopicField(ctx context.Context, userID uint, topicName string, field engine.TopicField, value int, now time.Time) (*models.Topic, error) {
	if err := engine.ValidateField(field, value); err != nil {
		s.metrics.UpdateFailures.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		updated models.Topic
		outcome engine.StreakOutcome
		awarded []string
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		user, err := s.users.LockForUpdate(dbc, userID)
		if err != nil {
			return classify("load user", err)
		}
		topic, err := s.topics.GetByUserAndName(dbc, userID, topicName)
		if err != nil {
			return classify("load topic", err)
		}

		setField(topic, field, value)
		topic.Progress = engine.CalculateProgress(topic.Learning, topic.LeetcodeEasy, topic.LeetcodeMedium, topic.LeetcodeHard)
		if err := s.topics.SaveMetrics(dbc, topic); err != nil {
			return classify("save topic", err)
		}

		today := s.cal.Today(now)
		if err := s.activity.Increment(dbc, userID, s.cal.Format(today)); err != nil {
			return classify("record activity", err)
		}

		var next engine.StreakState
		next, outcome = s.cal.Advance(s.streakState(user), now)
		if outcome != engine.StreakUnchanged {
			day := s.cal.Format(next.LastActive)
			if err := s.users.SaveStreak(dbc, userID, next.Streak, next.Points, day); err != nil {
				return classify("save streak", err)
			}
			user.Streak, user.Points, user.LastActiveDate = next.Streak, next.Points, &day
		}

		awarded = s.evaluateBadges(dbc, user, now)
		updated = *topic
		return nil
	})
	if err != nil {
		err = classify("update topic", err)
		s.metrics.UpdateFailures.WithLabelValues(failureReason(err)).Inc()
		s.log.Warn("Topic update failed", "user_id", userID, "topic", topicName, "field", field, "error", err)
		return nil, err
	}

	s.metrics.TopicUpdates.WithLabelValues(string(field)).Inc()
	s.metrics.StreakOutcomes.WithLabelValues(outcome.String()).Inc()
	for _, name := range awarded {
		s.metrics.BadgesAwarded.WithLabelValues(name).Inc()
	}
	s.invalidateLeaderboard(ctx)

	s.log.Debug("Topic updated",
		"user_id", userID,
		"topic", topicName,
		"field", field,
		"value", value,
		"progress", updated.Progress,
		"streak_outcome", outcome.String(),
		"badges_awarded", awarded,
	)
	return &updated, nil
}

func setField(topic *models.Topic, field engine.TopicField, value int) {
	switch field {
	case engine.FieldLearning:
		topic.Learning = value
	case engine.FieldLeetcodeEasy:
		topic.LeetcodeEasy = value
	case engine.FieldLeetcodeMedium:
		topic.LeetcodeMedium = value
	case engine.FieldLeetcodeHard:
		topic.LeetcodeHard = value
	}
}

func (s *TrackerService) streakState(user *models.User) engine.StreakState {
	state := engine.StreakState{Streak: user.Streak, Points: user.Points}
	if user.LastActiveDate == nil || *user.LastActiveDate == "" {
		return state
	}
	last, err := s.cal.Parse(*user.LastActiveDate)
	if err != nil {
		s.log.Warn("Unreadable last active date, treating user as new", "user_id", user.ID, "value", *user.LastActiveDate)
		return state
	}
	state.LastActive = last
	return state
}

func (s *TrackerService) invalidateLeaderboard(ctx context.Context) {
	if err := s.cache.Invalidate(context.WithoutCancel(ctx)); err != nil {
		s.log.Warn("Leaderboard cache invalidation failed", "error", err)
	}
}

// GetUserSnapshot returns the user with topics, badges and overall progress.
func (s *TrackerService) GetUserSnapshot(ctx context.Context, userID uint) (*models.UserSnapshot, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	dbc := dbctx.Context{Ctx: ctx}
	user, err := s.users.GetWithTopics(dbc, userID)
	if err != nil {
		return nil, classify("load user", err)
	}
	badges, err := s.badges.ListByUser(dbc, userID)
	if err != nil {
		return nil, classify("load badges", err)
	}
	user.Badges = badges

	snapshot := &models.UserSnapshot{User: *user, BadgesByKind: groupBadges(badges)}
	if progress, err := engine.OverallProgress(user.Topics); err == nil {
		snapshot.OverallProgress = &progress
	} else {
		snapshot.NoTopics = true
	}
	return snapshot, nil
}

// OverallProgress is the mean topic progress of a user; a user without topics is ErrInconsistentState.
func (s *TrackerService) OverallProgress(ctx context.Context, userID uint) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	dbc := dbctx.Context{Ctx: ctx}
	if _, err := s.users.GetByID(dbc, userID); err != nil {
		return 0, classify("load user", err)
	}
	topics, err := s.topics.ListByUser(dbc, userID)
	if err != nil {
		return 0, classify("load topics", err)
	}

	progress, err := engine.OverallProgress(topics)
	if errors.Is(err, engine.ErrNoTopics) {
		return 0, fmt.Errorf("user %d: %w: %w", userID, ErrInconsistentState, err)
	}
	return progress, err
}

// Authenticate checks a roster member's credentials.
func (s *TrackerService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user, err := s.users.GetByUsername(dbctx.Context{Ctx: ctx}, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, classify("load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateProfileLinks sets the non-nil links. An empty string clears a link.
func (s *TrackerService) UpdateProfileLinks(ctx context.Context, userID uint, links models.ProfileLinks) (*models.User, error) {
	updates := map[string]interface{}{}
	for column, value := range map[string]*string{
		"github_url":   links.GithubURL,
		"leetcode_url": links.LeetcodeURL,
		"linkedin_url": links.LinkedinURL,
	} {
		if value == nil {
			continue
		}
		if err := validateLink(*value); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, column, err)
		}
		updates[column] = *value
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	dbc := dbctx.Context{Ctx: ctx}

	if len(updates) > 0 {
		if err := s.users.UpdateFields(dbc, userID, updates); err != nil {
			return nil, classify("update links", err)
		}
		s.invalidateLeaderboard(ctx)
	}

	user, err := s.users.GetByID(dbc, userID)
	if err != nil {
		return nil, classify("load user", err)
	}
	return user, nil
}

func validateLink(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme %q not allowed", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
