package summarize

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"traveldeals/models"
)

type fakeClient struct {
	calls  []string
	errFor map[string]error
}

func (f *fakeClient) Summarize(ctx context.Context, hotelName string, reviewTexts []string) (models.ReviewSummary, error) {
	f.calls = append(f.calls, hotelName)
	if err := f.errFor[hotelName]; err != nil {
		return models.ReviewSummary{}, err
	}
	return models.ReviewSummary{
		GoodPoints:          []string{"good"},
		BadPoints:           []string{},
		UglyPoints:          []string{},
		OverallSummary:      "Summary for " + hotelName,
		ReviewCountAnalyzed: len(reviewTexts),
	}, nil
}

func ratedHotel(name string, reviews ...string) models.HotelRating {
	r := models.NewEmptyRating(name)
	for _, text := range reviews {
		r.Reviews = append(r.Reviews, models.Review{Text: text, Rating: 4})
	}
	return r
}

func newTestService(client SummaryClient, existing map[string]*models.ReviewSummary, saved *[][]models.HotelRating) *Service {
	svc := NewService(client, nil, 1000, existing, func(processed []models.HotelRating) error {
		snapshot := make([]models.HotelRating, len(processed))
		copy(snapshot, processed)
		*saved = append(*saved, snapshot)
		return nil
	})
	svc.retryBase = time.Millisecond
	svc.retryMax = 2 * time.Millisecond
	return svc
}

func TestServiceRun(t *testing.T) {
	client := &fakeClient{}
	var saved [][]models.HotelRating
	svc := newTestService(client, nil, &saved)

	ratings := []models.HotelRating{
		ratedHotel("Hotel A", "Great stay.", "Nice pool."),
		ratedHotel("Hotel B"), // no reviews, kept unsummarized
		ratedHotel("Hotel C", "Awful."),
	}

	out, err := svc.Run(context.Background(), ratings, Options{})

	require.NoError(t, err)
	require.Len(t, out, 3)
	require.Equal(t, []string{"Hotel A", "Hotel C"}, client.calls)

	require.NotNil(t, out[0].ReviewSummary)
	require.Equal(t, "Summary for Hotel A", out[0].ReviewSummary.OverallSummary)
	require.Equal(t, 2, out[0].ReviewSummary.ReviewCountAnalyzed)
	require.Nil(t, out[1].ReviewSummary)
	require.NotNil(t, out[2].ReviewSummary)

	// Progress is persisted after every hotel, always covering the full batch.
	require.Len(t, saved, 3)
	require.Len(t, saved[0], 3)
	require.NotNil(t, saved[0][0].ReviewSummary)
	require.Nil(t, saved[0][1].ReviewSummary)
	require.Nil(t, saved[0][2].ReviewSummary)
	require.Len(t, saved[2], 3)
}

func TestServiceRunSkipsExistingSummaries(t *testing.T) {
	client := &fakeClient{}
	var saved [][]models.HotelRating
	existing := map[string]*models.ReviewSummary{
		"hotel a": {OverallSummary: "Cached summary."},
	}
	svc := newTestService(client, existing, &saved)

	out, err := svc.Run(context.Background(), []models.HotelRating{
		ratedHotel("Hotel A", "Great stay."),
	}, Options{})

	require.NoError(t, err)
	require.Empty(t, client.calls)
	require.Equal(t, "Cached summary.", out[0].ReviewSummary.OverallSummary)
}

func TestServiceRunForceIgnoresExisting(t *testing.T) {
	client := &fakeClient{}
	var saved [][]models.HotelRating
	existing := map[string]*models.ReviewSummary{
		"hotel a": {OverallSummary: "Cached summary."},
	}
	svc := newTestService(client, existing, &saved)

	out, err := svc.Run(context.Background(), []models.HotelRating{
		ratedHotel("Hotel A", "Great stay."),
	}, Options{Force: true})

	require.NoError(t, err)
	require.Equal(t, []string{"Hotel A"}, client.calls)
	require.Equal(t, "Summary for Hotel A", out[0].ReviewSummary.OverallSummary)
}

func TestServiceRunHaltsOnSafetyBlock(t *testing.T) {
	client := &fakeClient{errFor: map[string]error{"Hotel B": ErrSafetyBlocked}}
	var saved [][]models.HotelRating
	svc := newTestService(client, nil, &saved)

	out, err := svc.Run(context.Background(), []models.HotelRating{
		ratedHotel("Hotel A", "Fine."),
		ratedHotel("Hotel B", "Blocked."),
		ratedHotel("Hotel C", "Never reached."),
	}, Options{})

	require.ErrorIs(t, err, ErrSafetyBlocked)
	// The blocked hotel is recorded without a summary; the rest of the batch
	// is abandoned but the persisted file still lists every hotel.
	require.Len(t, out, 2)
	require.NotNil(t, out[0].ReviewSummary)
	require.Nil(t, out[1].ReviewSummary)
	require.NotEmpty(t, saved)
	final := saved[len(saved)-1]
	require.Len(t, final, 3)
	require.Equal(t, "Hotel C", final[2].HotelName)
	require.Nil(t, final[2].ReviewSummary)

	// The safety block is not retried.
	require.Equal(t, []string{"Hotel A", "Hotel B"}, client.calls)
}

func TestServiceRunTransientFailureKeepsGoing(t *testing.T) {
	client := &fakeClient{errFor: map[string]error{"Hotel A": errors.New("boom")}}
	var saved [][]models.HotelRating
	svc := newTestService(client, nil, &saved)

	out, err := svc.Run(context.Background(), []models.HotelRating{
		ratedHotel("Hotel A", "Fine."),
		ratedHotel("Hotel B", "Fine."),
	}, Options{})

	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Nil(t, out[0].ReviewSummary)
	require.NotNil(t, out[1].ReviewSummary)
}

func TestServiceRunMaxNewSummaries(t *testing.T) {
	client := &fakeClient{}
	var saved [][]models.HotelRating
	svc := newTestService(client, nil, &saved)

	out, err := svc.Run(context.Background(), []models.HotelRating{
		ratedHotel("Hotel A", "Fine."),
		ratedHotel("Hotel B", "Fine."),
		ratedHotel("Hotel C", "Fine."),
	}, Options{MaxNew: 2})

	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, []string{"Hotel A", "Hotel B"}, client.calls)
}

func TestServiceRunEarlyStopKeepsPriorSummaries(t *testing.T) {
	client := &fakeClient{}
	var saved [][]models.HotelRating
	existing := map[string]*models.ReviewSummary{
		"hotel a": {OverallSummary: "Previous summary A."},
		"hotel b": {OverallSummary: "Previous summary B."},
	}
	svc := newTestService(client, existing, &saved)

	_, err := svc.Run(context.Background(), []models.HotelRating{
		ratedHotel("Hotel New", "Fresh reviews."),
		ratedHotel("Hotel A", "Great stay."),
		ratedHotel("Hotel B", "Nice pool."),
	}, Options{MaxNew: 1})

	require.NoError(t, err)
	require.Equal(t, []string{"Hotel New"}, client.calls)

	// Stopping after one new summary must not drop the summaries a previous
	// run already saved for the hotels this run never reached.
	final := saved[len(saved)-1]
	require.Len(t, final, 3)
	require.Equal(t, "Summary for Hotel New", final[0].ReviewSummary.OverallSummary)
	require.Equal(t, "Previous summary A.", final[1].ReviewSummary.OverallSummary)
	require.Equal(t, "Previous summary B.", final[2].ReviewSummary.OverallSummary)
}

func TestServiceRunHotelFilter(t *testing.T) {
	client := &fakeClient{}
	var saved [][]models.HotelRating
	svc := newTestService(client, nil, &saved)

	out, err := svc.Run(context.Background(), []models.HotelRating{
		ratedHotel("Hotel A", "Fine."),
		ratedHotel("Hotel B", "Fine."),
	}, Options{HotelFilter: "hotel b"})

	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Hotel B", out[0].HotelName)

	_, err = svc.Run(context.Background(), []models.HotelRating{
		ratedHotel("Hotel A", "Fine."),
	}, Options{HotelFilter: "Nonexistent"})
	require.Error(t, err)
}
