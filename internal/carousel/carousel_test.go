package carousel

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

var abc = []string{"/media/a.jpg", "/media/b.jpg", "/media/c.jpg"}

func newFakeCarousel(images []string, opts ...Option) (*Carousel, *clockwork.FakeClock) {
	clk := clockwork.NewFakeClockAt(time.Unix(0, 0))
	return New("test", images, clk, opts...), clk
}

// waitTimers blocks until exactly n timers are scheduled on clk.
func waitTimers(t *testing.T, clk *clockwork.FakeClock, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, clk.BlockUntilContext(ctx, n), "waiting for %d timers", n)
}

// elapse advances clk onto a due advance and waits for the carousel to arm
// the next one. Fired callbacks run on their own goroutine.
func elapse(t *testing.T, clk *clockwork.FakeClock, d time.Duration) {
	t.Helper()
	clk.Advance(d)
	waitTimers(t, clk, 1)
}

func activeCount(v View) int {
	n := 0
	for _, s := range v.Slides {
		if s.Active {
			n++
		}
	}
	return n
}

func TestCarousel_MountStartsAtZeroWithOneTimer(t *testing.T) {
	req := require.New(t)
	c, clk := newFakeCarousel(abc)

	req.Equal(State{Index: 0, Paused: false, Armed: true}, c.State())
	waitTimers(t, clk, 1)
}

func TestCarousel_AutoAdvanceThenPrevRestartsFullWait(t *testing.T) {
	req := require.New(t)
	c, clk := newFakeCarousel(abc, WithInterval(4000*time.Millisecond))

	// Given a full interval elapses without interaction
	elapse(t, clk, 4000*time.Millisecond)
	req.Equal(1, c.State().Index)

	// When the visitor goes back
	clk.Advance(3000 * time.Millisecond)
	c.Prev()
	req.Equal(0, c.State().Index)

	// Then the next advance is a full interval away from the click
	clk.Advance(3999 * time.Millisecond)
	req.Equal(0, c.State().Index)
	elapse(t, clk, time.Millisecond)
	req.Equal(1, c.State().Index)
}

func TestCarousel_TimerChainSelfReschedules(t *testing.T) {
	req := require.New(t)
	c, clk := newFakeCarousel(abc, WithInterval(time.Second))

	for i := 0; i < 3; i++ {
		elapse(t, clk, time.Second)
	}

	req.Equal(0, c.State().Index)
}

func TestCarousel_GoToNormalisesAnyInteger(t *testing.T) {
	req := require.New(t)
	c, _ := newFakeCarousel(abc)
	n := len(abc)

	for _, i := range []int{-7, -3, -1, 0, 1, 2, 3, 4, 5, 100} {
		c.GoTo(i)
		req.Equal(((i%n)+n)%n, c.State().Index, "goTo(%d)", i)
	}
}

func TestCarousel_NextThenPrevRestoresIndex(t *testing.T) {
	req := require.New(t)
	c, _ := newFakeCarousel(abc)

	for start := 0; start < len(abc); start++ {
		c.GoTo(start)
		c.Next()
		c.Prev()
		req.Equal(start, c.State().Index)
	}
}

func TestCarousel_NextWrapsAfterLastSlide(t *testing.T) {
	req := require.New(t)
	images := []string{"1", "2", "3", "4", "5"}
	c, _ := newFakeCarousel(images)

	for i := 0; i < len(images)-1; i++ {
		c.Next()
	}
	req.Equal(len(images)-1, c.State().Index)

	c.Next()
	req.Equal(0, c.State().Index)
}

func TestCarousel_PausedIgnoresElapsedTime(t *testing.T) {
	req := require.New(t)
	c, clk := newFakeCarousel(abc, WithInterval(time.Second))

	// Given the pointer is over the widget
	c.PointerEnter()
	req.True(c.State().Paused)
	req.False(c.State().Armed)
	waitTimers(t, clk, 0)

	// When lots of time passes
	for i := 0; i < 10; i++ {
		clk.Advance(time.Second)
	}

	// Then nothing moved
	req.Equal(0, c.State().Index)
}

func TestCarousel_NavigationWhilePausedDoesNotArm(t *testing.T) {
	req := require.New(t)
	c, clk := newFakeCarousel(abc, WithInterval(time.Second))

	c.PointerEnter()
	c.Next()
	c.GoTo(2)

	req.Equal(2, c.State().Index)
	waitTimers(t, clk, 0)
}

func TestCarousel_PointerLeaveStartsFreshInterval(t *testing.T) {
	req := require.New(t)
	c, clk := newFakeCarousel(abc, WithInterval(4*time.Second))

	clk.Advance(3 * time.Second)
	c.PointerEnter()
	clk.Advance(10 * time.Second)
	c.PointerLeave()

	// The three seconds waited before the pause are not credited
	clk.Advance(3 * time.Second)
	req.Equal(0, c.State().Index)
	elapse(t, clk, time.Second)
	req.Equal(1, c.State().Index)
}

func TestCarousel_AtMostOneTimer(t *testing.T) {
	c, clk := newFakeCarousel(abc, WithInterval(time.Second))

	c.Next()
	c.Next()
	c.PointerLeave()
	c.GoTo(7)
	c.Prev()

	waitTimers(t, clk, 1)
}

func TestCarousel_NoTimerForShortSetsOrDisabledInterval(t *testing.T) {
	cases := map[string]struct {
		images []string
		opts   []Option
	}{
		"empty":             {images: nil},
		"single":            {images: []string{"only.jpg"}},
		"zero interval":     {images: abc, opts: []Option{WithInterval(0)}},
		"negative interval": {images: abc, opts: []Option{WithInterval(-time.Second)}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			c, clk := newFakeCarousel(tc.images, tc.opts...)
			waitTimers(t, clk, 0)

			c.Next()
			c.Prev()
			c.GoTo(5)
			c.PointerEnter()
			c.PointerLeave()

			waitTimers(t, clk, 0)
			req.False(c.State().Armed)
		})
	}
}

func TestCarousel_SingleSlideStaysAtZero(t *testing.T) {
	req := require.New(t)
	c, _ := newFakeCarousel([]string{"only.jpg"})

	c.Next()
	c.GoTo(-4)
	c.Prev()

	req.Equal(0, c.State().Index)
}

func TestCarousel_EmptySet(t *testing.T) {
	req := require.New(t)
	c, clk := newFakeCarousel(nil, WithControls(true))

	c.GoTo(5)

	v := c.View()
	req.Empty(v.Slides)
	req.False(v.Controls)
	req.Empty(v.Dots)
	waitTimers(t, clk, 0)
	req.Equal(0, c.State().Index)
}

func TestCarousel_ExactlyOneActiveSlide(t *testing.T) {
	req := require.New(t)
	c, clk := newFakeCarousel(abc, WithInterval(time.Second))

	req.Equal(1, activeCount(c.View()))
	for i := 0; i < 7; i++ {
		elapse(t, clk, time.Second)
		req.Equal(1, activeCount(c.View()))
		c.GoTo(i * 5)
		req.Equal(1, activeCount(c.View()))
	}
}

func TestCarousel_CloseCancelsTimer(t *testing.T) {
	req := require.New(t)
	c, clk := newFakeCarousel(abc, WithInterval(time.Second))
	ch, _ := c.Subscribe()

	c.Close()

	waitTimers(t, clk, 0)
	_, open := <-ch
	req.False(open)

	// Operations after unmount do nothing
	c.Next()
	c.PointerLeave()
	clk.Advance(time.Minute)
	req.Equal(0, c.State().Index)
	waitTimers(t, clk, 0)
}

func TestCarousel_SubscribersSeeLatestState(t *testing.T) {
	req := require.New(t)
	c, clk := newFakeCarousel(abc, WithInterval(time.Second))
	ch, cancel := c.Subscribe()
	defer cancel()

	c.Next()
	elapse(t, clk, time.Second)
	req.Equal(2, c.State().Index)

	st := <-ch
	req.Equal(2, st.Index)
	req.True(st.Armed)

	select {
	case extra := <-ch:
		t.Fatalf("unexpected buffered state %+v", extra)
	default:
	}
}

func TestCarousel_UnsubscribeClosesChannel(t *testing.T) {
	req := require.New(t)
	c, _ := newFakeCarousel(abc)
	ch, cancel := c.Subscribe()

	cancel()
	cancel()

	_, open := <-ch
	req.False(open)
	c.Next()
}
