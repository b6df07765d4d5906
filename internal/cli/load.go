package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/comparedemo/internal/logbuf"
	"github.com/wesleyorama2/comparedemo/internal/loadgen"
	"github.com/wesleyorama2/comparedemo/internal/metrics"
	"github.com/wesleyorama2/comparedemo/internal/output"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Generate fixed-rate order load until interrupted",
	Long: `Send one order per tick at the chosen tier and notify the local scaling
listener on start and stop. Runs until Ctrl+C or until --duration elapses,
then prints a latency summary.

  comparedemo load --tier medium --user u-1 --product p-1 --duration 2m`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tierKey, _ := cmd.Flags().GetString("tier")
		userID, _ := cmd.Flags().GetString("user")
		productID, _ := cmd.Flags().GetString("product")
		duration, _ := cmd.Flags().GetDuration("duration")

		tier, err := loadgen.ParseTier(tierKey)
		if err != nil {
			return err
		}

		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if duration > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, duration)
			defer cancel()
		}

		return runLoad(ctx, a, loadRun{
			tier: tier,
			form: loadgen.OrderForm{UserID: userID, ProductID: productID},
			out:  cmd.OutOrStdout(),
		})
	},
}

type loadRun struct {
	tier  loadgen.Tier
	form  loadgen.OrderForm
	out   io.Writer
	clock loadgen.Clock
}

// runLoad runs one session until ctx is done.
func runLoad(ctx context.Context, a *app, run loadRun) error {
	svc, err := a.service("")
	if err != nil {
		return err
	}

	f := output.NewFormatter(output.FormatJSON, a.noColor)
	log := logbuf.New(a.cfg.LogCapacity)
	recorder := metrics.NewRecorder()
	notifier := loadgen.NewListenerNotifier(a.cfg.NotifyURL, a.client, log, a.logger)

	var mu sync.Mutex
	printf := func(format string, args ...interface{}) {
		mu.Lock()
		fmt.Fprintf(run.out, format, args...)
		mu.Unlock()
	}
	log.Subscribe(func(e logbuf.Entry) {
		printf("%s\n", f.RenderEntry(e))
	})

	gen := loadgen.New(loadgen.Options{
		Orders:   svc,
		Notifier: notifier,
		Log:      log,
		Clock:    run.clock,
		Form:     run.form,
		Recorder: recorder,
		Logger:   a.logger,
	})
	gen.OnStatus(func(status string) {
		printf("%s\n", f.RenderStatus(status))
	})

	if err := gen.Start(run.tier); err != nil {
		return err
	}

	<-ctx.Done()

	gen.Stop()
	gen.Wait()
	waitNotify(notifier, 5*time.Second)

	printf("%s", f.FormatSummary(run.tier.Description, recorder.Snapshot()))
	return nil
}

// waitNotify waits for pending listener notifications, up to limit.
func waitNotify(n *loadgen.ListenerNotifier, limit time.Duration) {
	done := make(chan struct{})
	go func() {
		n.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(limit):
	}
}

func init() {
	loadCmd.Flags().StringP("tier", "t", "", "Load tier (low, medium or high)")
	loadCmd.Flags().StringP("user", "u", "", "Order user id (defaults to "+loadgen.FallbackUserID+")")
	loadCmd.Flags().StringP("product", "p", "", "Order product id (defaults to "+loadgen.FallbackProductID+")")
	loadCmd.Flags().DurationP("duration", "d", 0, "Stop after this long (0 runs until interrupted)")
	loadCmd.MarkFlagRequired("tier")
}
