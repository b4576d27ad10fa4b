package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tahmid/focusflow/internal/apperror"
	"github.com/tahmid/focusflow/internal/model"
	"github.com/tahmid/focusflow/internal/repository"
	"github.com/tahmid/focusflow/internal/video"
)

// How much of the user's state feeds a recommendation: at most three
// goals contribute queries, two results each, over a seven-day activity
// window.
const (
	maxGoalsPerRecommendation  = 3
	videosPerGoal              = 2
	recentActivityWindow       = 7 * 24 * time.Hour
	defaultRecommendationCount = 5
	maxRecommendationCount     = 50
)

// categoryKeywords expands a goal category into search terms. A category
// not in the table (including the "motivation" placeholder for goals
// with no category at all) falls through to "motivation success".
var categoryKeywords = map[string]string{
	"career":       "career development professional growth",
	"health":       "health fitness wellness motivation",
	"learning":     "learning education skill development",
	"personal":     "personal development self improvement",
	"productivity": "productivity time management focus",
	"finance":      "financial success money management",
}

var trendingQueries = []string{
	"motivation success mindset",
	"productivity life improvement",
	"goal achievement personal development",
}

const welcomeReason = "Welcome! Here are some trending motivational videos to get you started. Create your first goal to get personalized recommendations!"

// BoostService assembles video recommendations from the user's goals
// and recent activity. The provider may be nil when no API key is
// configured; every operation then fails with Unavailable rather than
// pretending the feature works.
type BoostService struct {
	goals      repository.GoalRepository
	activities repository.ActivityRepository
	provider   video.Provider
	logger     *slog.Logger
}

func NewBoostService(goals repository.GoalRepository, activities repository.ActivityRepository, provider video.Provider, logger *slog.Logger) *BoostService {
	return &BoostService{
		goals:      goals,
		activities: activities,
		provider:   provider,
		logger:     logger,
	}
}

// GoalInfo summarises one goal's contribution to a recommendation.
type GoalInfo struct {
	Title      string `json:"title"`
	Category   string `json:"category"`
	VideoCount int    `json:"video_count"`
}

// Recommendation is the full personalised payload.
type Recommendation struct {
	Videos              []video.Video `json:"videos"`
	Reason              string        `json:"reason"`
	UserGoals           []GoalInfo    `json:"user_goals"`
	RecommendationCount int           `json:"recommendation_count"`
}

// SearchResult wraps a direct search.
type SearchResult struct {
	Videos      []video.Video `json:"videos"`
	Query       string        `json:"query"`
	ResultCount int           `json:"result_count"`
}

// GoalSummary identifies the goal a targeted lookup was made for.
type GoalSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// GoalVideosResult wraps a per-goal lookup.
type GoalVideosResult struct {
	Videos      []video.Video `json:"videos"`
	Goal        GoalSummary   `json:"goal"`
	ResultCount int           `json:"result_count"`
}

// TrendingResult wraps the trending listing.
type TrendingResult struct {
	Videos      []video.Video `json:"videos"`
	ResultCount int           `json:"result_count"`
	Category    string        `json:"category"`
}

func (s *BoostService) requireProvider() error {
	if s.provider == nil {
		return apperror.Unavailable("YouTube API not configured")
	}
	return nil
}

// Recommend builds a personalised video list from the caller's active
// goals and last week of activity.
//
// The first three active goals each contribute a two-result search;
// the merged list is deduplicated by video ID (first occurrence wins)
// and then truncated to maxResults. A user with no active goals and no
// recent activity gets the trending fallback with a welcome message.
// Individual search failures degrade to fewer results, never to an
// error — a flaky provider should not take the endpoint down.
func (s *BoostService) Recommend(ctx context.Context, userID string, maxResults int) (*Recommendation, error) {
	if err := s.requireProvider(); err != nil {
		return nil, err
	}
	maxResults = clampCount(maxResults, defaultRecommendationCount)

	notAchieved := false
	activeFilter := repository.GoalFilter{Achieved: &notAchieved}

	// The reason string reports every active goal, not just the ones
	// that contribute searches, so count separately from the page.
	totalActive, err := s.goals.Count(ctx, userID, activeFilter)
	if err != nil {
		return nil, err
	}

	activeFilter.ListOptions = repository.ListOptions{Limit: maxGoalsPerRecommendation}
	activeGoals, err := s.goals.List(ctx, userID, activeFilter)
	if err != nil {
		return nil, err
	}

	recentActivities, err := s.activities.ListSince(ctx, userID, time.Now().Add(-recentActivityWindow))
	if err != nil {
		return nil, err
	}

	if totalActive == 0 && len(recentActivities) == 0 {
		videos := s.trendingVideos(ctx, maxResults)
		return &Recommendation{
			Videos:              videos,
			Reason:              welcomeReason,
			UserGoals:           []GoalInfo{},
			RecommendationCount: len(videos),
		}, nil
	}

	contributing := activeGoals
	if len(contributing) > maxGoalsPerRecommendation {
		contributing = contributing[:maxGoalsPerRecommendation]
	}

	var collected []video.Video
	goalInfo := make([]GoalInfo, 0, len(contributing))
	for _, goal := range contributing {
		found, err := s.provider.Search(ctx, goalQuery(goal.Title, goal.Category), videosPerGoal, video.OrderRelevance, video.DurationMedium)
		if err != nil {
			s.logger.Warn("goal video search failed", "goal_id", goal.ID, "error", err)
			found = nil
		}
		collected = append(collected, found...)
		goalInfo = append(goalInfo, GoalInfo{
			Title:      goal.Title,
			Category:   goal.Category,
			VideoCount: len(found),
		})
	}

	unique := dedupVideos(collected)
	if len(unique) > maxResults {
		unique = unique[:maxResults]
	}

	return &Recommendation{
		Videos:              unique,
		Reason:              recommendationReason(totalActive, contributing, len(recentActivities)),
		UserGoals:           goalInfo,
		RecommendationCount: len(unique),
	}, nil
}

// Trending returns popular motivational videos, rotating through a
// fixed set of queries ordered by view count.
func (s *BoostService) Trending(ctx context.Context, maxResults int) (*TrendingResult, error) {
	if err := s.requireProvider(); err != nil {
		return nil, err
	}
	maxResults = clampCount(maxResults, 10)

	videos := s.trendingVideos(ctx, maxResults)
	return &TrendingResult{
		Videos:      videos,
		ResultCount: len(videos),
		Category:    "Trending Motivational Content",
	}, nil
}

func (s *BoostService) trendingVideos(ctx context.Context, maxResults int) []video.Video {
	perQuery := maxResults/len(trendingQueries) + 1

	var collected []video.Video
	for _, query := range trendingQueries {
		found, err := s.provider.Search(ctx, query, perQuery, video.OrderViewCount, video.DurationMedium)
		if err != nil {
			s.logger.Warn("trending search failed", "query", query, "error", err)
			continue
		}
		collected = append(collected, found...)
		if len(collected) >= maxResults {
			break
		}
	}

	if len(collected) > maxResults {
		collected = collected[:maxResults]
	}
	if collected == nil {
		// Keep the JSON field an array even when every query failed.
		collected = []video.Video{}
	}
	return collected
}

// GoalVideos returns videos targeted at one of the caller's goals.
func (s *BoostService) GoalVideos(ctx context.Context, userID, goalID string, maxResults int) (*GoalVideosResult, error) {
	if err := s.requireProvider(); err != nil {
		return nil, err
	}
	maxResults = clampCount(maxResults, defaultRecommendationCount)

	goal, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(goal, "goal", goalID, userID); err != nil {
		return nil, err
	}

	videos, err := s.provider.Search(ctx, goalQuery(goal.Title, goal.Category), maxResults, video.OrderRelevance, video.DurationMedium)
	if err != nil {
		s.logger.Warn("goal video search failed", "goal_id", goalID, "error", err)
	}
	if videos == nil {
		videos = []video.Video{}
	}

	return &GoalVideosResult{
		Videos: videos,
		Goal: GoalSummary{
			ID:          goal.ID,
			Title:       goal.Title,
			Category:    goal.Category,
			Description: goal.Description,
		},
		ResultCount: len(videos),
	}, nil
}

// Search is a direct provider search. Unlike the assembled endpoints, a
// provider failure here is surfaced — the caller asked for exactly this
// query and deserves to know it did not run.
func (s *BoostService) Search(ctx context.Context, query string, maxResults int) (*SearchResult, error) {
	if err := s.requireProvider(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(query)) < 2 {
		return nil, apperror.ValidationFailed("query", "search query must be at least 2 characters long")
	}
	maxResults = clampCount(maxResults, 10)

	videos, err := s.provider.Search(ctx, query, maxResults, video.OrderRelevance, video.DurationMedium)
	if err != nil {
		return nil, apperror.Unavailable("video search failed")
	}
	if videos == nil {
		videos = []video.Video{}
	}

	return &SearchResult{
		Videos:      videos,
		Query:       query,
		ResultCount: len(videos),
	}, nil
}

// VideoDetails returns the full record for one video.
func (s *BoostService) VideoDetails(ctx context.Context, videoID string) (*video.Video, error) {
	if err := s.requireProvider(); err != nil {
		return nil, err
	}

	videos, err := s.provider.Details(ctx, []string{videoID})
	if err != nil {
		return nil, apperror.Unavailable("video lookup failed")
	}
	if len(videos) == 0 {
		return nil, apperror.NotFound("video", videoID)
	}
	return &videos[0], nil
}

// goalQuery builds the provider query for one goal. A missing category
// goes through the same keyword table as any unknown one and lands on
// the generic motivation terms.
func goalQuery(title, category string) string {
	if category == "" {
		category = "motivation"
	}
	keywords, ok := categoryKeywords[strings.ToLower(category)]
	if !ok {
		keywords = "motivation success"
	}
	return fmt.Sprintf("%s %s tutorial guide", title, keywords)
}

// recommendationReason names the total active goal count, the titles
// that actually contributed, and the size of the activity window.
func recommendationReason(totalActiveGoals int, contributing []model.Goal, activityCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on your %d active goal(s)", totalActiveGoals)

	if len(contributing) > 0 {
		titles := make([]string, len(contributing))
		for i, g := range contributing {
			titles[i] = g.Title
		}
		fmt.Fprintf(&b, ": '%s'", strings.Join(titles, ", "))
	}
	if activityCount > 0 {
		fmt.Fprintf(&b, " and %d recent activities", activityCount)
	}
	b.WriteString(", here are YouTube videos to help you achieve your goals!")
	return b.String()
}

func dedupVideos(videos []video.Video) []video.Video {
	seen := make(map[string]struct{}, len(videos))
	unique := make([]video.Video, 0, len(videos))
	for _, v := range videos {
		if _, ok := seen[v.VideoID]; ok {
			continue
		}
		seen[v.VideoID] = struct{}{}
		unique = append(unique, v)
	}
	return unique
}

func clampCount(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	if n > maxRecommendationCount {
		return maxRecommendationCount
	}
	return n
}
