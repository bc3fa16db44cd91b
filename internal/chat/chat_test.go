package chat

import (
	"bytes"
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/spboyer/quizpilot/internal/config"
	"github.com/spboyer/quizpilot/internal/desktop"
	"github.com/spboyer/quizpilot/internal/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeLocator struct {
	clicked []string
	located []string
	// locateErrs are returned by successive Locate calls before succeeding.
	locateErrs []error
}

func (f *fakeLocator) Locate(_ context.Context, name string) (screen.Region, error) {
	f.located = append(f.located, name)
	if len(f.locateErrs) > 0 {
		err := f.locateErrs[0]
		f.locateErrs = f.locateErrs[1:]
		return screen.Region{}, err
	}
	return screen.Region{Name: name, Rect: image.Rect(100, 200, 120, 220), Score: 0.99}, nil
}

func (f *fakeLocator) LocateAndClick(_ context.Context, name string, offset image.Point) (image.Point, error) {
	f.clicked = append(f.clicked, name)
	return image.Pt(10, 10).Add(offset), nil
}

type fakeSnapper struct {
	snaps []bool
}

func (f *fakeSnapper) Snap(_ context.Context, toRight bool) error {
	f.snaps = append(f.snaps, toRight)
	return nil
}

type fakeLauncher struct {
	name string
	args []string
	err  error
}

func (f *fakeLauncher) Launch(_ context.Context, name string, args ...string) error {
	f.name, f.args = name, args
	return f.err
}

func testConfig(strategy string) *config.Config {
	cfg := config.New()
	cfg.Chat.WaitStrategy = strategy
	cfg.Chat.PollInterval = time.Millisecond
	cfg.Timing.ChatLaunchSettle = 0
	cfg.Timing.CopySettle = 0
	return cfg
}

func TestOpenChat(t *testing.T) {
	ctrl := gomock.NewController(t)
	launcher := &fakeLauncher{}
	snapper := &fakeSnapper{}
	r := NewRelay(desktop.NewMockDesktop(ctrl), &fakeLocator{}, snapper, testConfig(config.WaitStrategyFixed), WithLauncher(launcher))

	require.NoError(t, r.OpenChat(context.Background()))

	assert.Equal(t, "firefox", launcher.name)
	assert.Equal(t, []string{"-new-tab", "https://chat.openai.com"}, launcher.args)
	assert.Equal(t, []bool{false}, snapper.snaps)
}

func TestOpenChat_LaunchFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	launcher := &fakeLauncher{err: errors.New("no such file")}
	snapper := &fakeSnapper{}
	r := NewRelay(desktop.NewMockDesktop(ctrl), &fakeLocator{}, snapper, testConfig(config.WaitStrategyFixed), WithLauncher(launcher))

	require.ErrorContains(t, r.OpenChat(context.Background()), "no such file")
	assert.Empty(t, snapper.snaps)
}

func TestAsk_Fixed(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := desktop.NewMockDesktop(ctrl)
	loc := &fakeLocator{}
	r := NewRelay(d, loc, &fakeSnapper{}, testConfig(config.WaitStrategyFixed))

	gomock.InOrder(
		d.EXPECT().TypeText("question text").Return(nil),
		d.EXPECT().KeyTap("enter").Return(nil),
	)

	began := time.Now()
	require.NoError(t, r.Ask(context.Background(), "question text", 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(began), 20*time.Millisecond)
	assert.Equal(t, []string{config.DefaultSendMessageImage}, loc.clicked)
	assert.Empty(t, loc.located, "fixed wait never reads the response")
}

func TestAsk_FixedShowsCountdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := desktop.NewMockDesktop(ctrl)
	var out bytes.Buffer
	r := NewRelay(d, &fakeLocator{}, &fakeSnapper{}, testConfig(config.WaitStrategyFixed), WithProgress(&out))

	d.EXPECT().TypeText(gomock.Any()).Return(nil)
	d.EXPECT().KeyTap("enter").Return(nil)

	require.NoError(t, r.Ask(context.Background(), "q", 200*time.Millisecond))
	assert.Contains(t, out.String(), "Waiting for the chat response")
}

func expectCopy(d *desktop.MockDesktop) {
	d.EXPECT().MultiClick(gomock.Any(), gomock.Any(), 3).Return(nil).AnyTimes()
	d.EXPECT().WriteClipboard("").Return(nil).AnyTimes()
	d.EXPECT().KeyTap("c", "ctrl").Return(nil).AnyTimes()
}

func TestAsk_PollSettles(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := desktop.NewMockDesktop(ctrl)
	loc := &fakeLocator{}
	r := NewRelay(d, loc, &fakeSnapper{}, testConfig(config.WaitStrategyPoll))

	d.EXPECT().TypeText("q").Return(nil)
	d.EXPECT().KeyTap("enter").Return(nil)
	expectCopy(d)
	gomock.InOrder(
		d.EXPECT().ReadClipboard().Return("", nil),
		d.EXPECT().ReadClipboard().Return("B", nil),
		d.EXPECT().ReadClipboard().Return("B\n", nil),
	)

	require.NoError(t, r.Ask(context.Background(), "q", 5*time.Second))
	assert.Len(t, loc.located, 3)
}

func TestAsk_PollWaitsForResponseToAppear(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := desktop.NewMockDesktop(ctrl)
	lowConfidence := &screen.NotFoundError{Name: "response.png", Score: 0.3, Threshold: 0.8}
	loc := &fakeLocator{locateErrs: []error{lowConfidence, lowConfidence}}
	r := NewRelay(d, loc, &fakeSnapper{}, testConfig(config.WaitStrategyPoll))

	d.EXPECT().TypeText("q").Return(nil)
	d.EXPECT().KeyTap("enter").Return(nil)
	expectCopy(d)
	d.EXPECT().ReadClipboard().Return("C", nil).Times(2)

	require.NoError(t, r.Ask(context.Background(), "q", 5*time.Second))
	assert.Len(t, loc.located, 4)
}

func TestAsk_PollTimesOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := desktop.NewMockDesktop(ctrl)
	r := NewRelay(d, &fakeLocator{}, &fakeSnapper{}, testConfig(config.WaitStrategyPoll))

	d.EXPECT().TypeText("q").Return(nil)
	d.EXPECT().KeyTap("enter").Return(nil)
	expectCopy(d)
	n := 0
	d.EXPECT().ReadClipboard().DoAndReturn(func() (string, error) {
		n++
		return string(rune('A' + n%2)), nil
	}).AnyTimes()

	err := r.Ask(context.Background(), "q", 30*time.Millisecond)

	var timeout *ResponseTimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.NotEmpty(t, timeout.Last)
	assert.GreaterOrEqual(t, timeout.Waited, 30*time.Millisecond)
}

// A copy with nothing selected leaves the clipboard untouched. The previous
// round's answer sitting there must not be taken for the new reply.
func TestAsk_PollIgnoresStaleClipboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := desktop.NewMockDesktop(ctrl)
	r := NewRelay(d, &fakeLocator{}, &fakeSnapper{}, testConfig(config.WaitStrategyPoll))

	clip := "B"
	d.EXPECT().TypeText("q").Return(nil)
	d.EXPECT().KeyTap("enter").Return(nil)
	d.EXPECT().MultiClick(gomock.Any(), gomock.Any(), 3).Return(nil).AnyTimes()
	d.EXPECT().KeyTap("c", "ctrl").Return(nil).AnyTimes()
	d.EXPECT().WriteClipboard(gomock.Any()).DoAndReturn(func(text string) error {
		clip = text
		return nil
	}).AnyTimes()
	d.EXPECT().ReadClipboard().DoAndReturn(func() (string, error) {
		return clip, nil
	}).AnyTimes()

	err := r.Ask(context.Background(), "q", 30*time.Millisecond)

	var timeout *ResponseTimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Empty(t, timeout.Last)
}

func TestReadResponse_ClearFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := desktop.NewMockDesktop(ctrl)
	r := NewRelay(d, &fakeLocator{}, &fakeSnapper{}, testConfig(config.WaitStrategyPoll))

	d.EXPECT().MultiClick(gomock.Any(), gomock.Any(), 3).Return(nil)
	d.EXPECT().WriteClipboard("").Return(errors.New("no clipboard"))

	_, err := r.ReadResponse(context.Background())
	require.ErrorContains(t, err, "clearing clipboard")
}

func TestAsk_PollStopsOnHardFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := desktop.NewMockDesktop(ctrl)
	loc := &fakeLocator{locateErrs: []error{errors.New("capture failed")}}
	r := NewRelay(d, loc, &fakeSnapper{}, testConfig(config.WaitStrategyPoll))

	d.EXPECT().TypeText("q").Return(nil)
	d.EXPECT().KeyTap("enter").Return(nil)

	err := r.Ask(context.Background(), "q", time.Second)
	require.ErrorContains(t, err, "capture failed")

	var timeout *ResponseTimeoutError
	assert.False(t, errors.As(err, &timeout))
}

func TestAsk_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := desktop.NewMockDesktop(ctrl)
	r := NewRelay(d, &fakeLocator{}, &fakeSnapper{}, testConfig(config.WaitStrategyFixed))

	d.EXPECT().TypeText("q").Return(nil)
	d.EXPECT().KeyTap("enter").Return(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, r.Ask(ctx, "q", time.Minute), context.DeadlineExceeded)
}

func TestReadResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := desktop.NewMockDesktop(ctrl)
	loc := &fakeLocator{}
	r := NewRelay(d, loc, &fakeSnapper{}, testConfig(config.WaitStrategyPoll))

	// region center is (110, 210); the paragraph starts 50px to the right
	gomock.InOrder(
		d.EXPECT().MultiClick(160, 210, 3).Return(nil),
		d.EXPECT().WriteClipboard("").Return(nil),
		d.EXPECT().KeyTap("c", "ctrl").Return(nil),
		d.EXPECT().ReadClipboard().Return("D.", nil),
	)

	text, err := r.ReadResponse(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "D.", text)
	assert.Equal(t, []string{config.DefaultResponseImage}, loc.located)
}

func TestResponseTimeoutError(t *testing.T) {
	assert.Equal(t, "no chat response after 30s", (&ResponseTimeoutError{Waited: 30 * time.Second}).Error())
	assert.Contains(t, (&ResponseTimeoutError{Waited: time.Second, Last: "A"}).Error(), `"A"`)
}
