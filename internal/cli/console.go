package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/comparedemo/internal/config"
	"github.com/wesleyorama2/comparedemo/internal/logbuf"
	"github.com/wesleyorama2/comparedemo/internal/loadgen"
	"github.com/wesleyorama2/comparedemo/internal/metrics"
	"github.com/wesleyorama2/comparedemo/internal/tui"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the interactive console",
	Long: `Open a terminal UI with manual user, product and order calls for both
architectures and the load generation controls. Diagnostic logs are discarded
unless --log-file is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		arch, _ := cmd.Flags().GetString("arch")

		a, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		services := make(map[string]tui.Backend)
		for _, name := range []string{config.ArchMicroservices, config.ArchMonolith} {
			svc, err := a.service(name)
			if err != nil {
				return err
			}
			services[name] = svc
		}
		if arch == "" {
			arch = a.cfg.Load.Architecture
		}

		gen, notifier, err := a.generator(nil)
		if err != nil {
			return err
		}
		defer func() {
			gen.Stop()
			gen.Wait()
			waitNotify(notifier, 5*time.Second)
		}()

		m := tui.New(tui.Options{
			Generator: gen,
			Services:  services,
			Arch:      arch,
			Form:      loadgen.OrderForm{UserID: a.cfg.Load.UserID, ProductID: a.cfg.Load.ProductID},
			Context:   cmd.Context(),
		})

		_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	},
}

// generator wires a load generator to the configured load architecture
// and scaling listener.
func (a *app) generator(recorder *metrics.Recorder) (*loadgen.Generator, *loadgen.ListenerNotifier, error) {
	svc, err := a.service("")
	if err != nil {
		return nil, nil, err
	}
	log := logbuf.New(a.cfg.LogCapacity)
	notifier := loadgen.NewListenerNotifier(a.cfg.NotifyURL, a.client, log, a.logger)
	gen := loadgen.New(loadgen.Options{
		Orders:   svc,
		Notifier: notifier,
		Log:      log,
		Form:     loadgen.OrderForm{UserID: a.cfg.Load.UserID, ProductID: a.cfg.Load.ProductID},
		Recorder: recorder,
		Logger:   a.logger,
	})
	return gen, notifier, nil
}

func init() {
	consoleCmd.Flags().StringP("arch", "a", "", "Architecture selected at startup (monolith or microservices)")
}
