package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/simp-lee/odnoklassniki"
)

const stateCookie = "okauth_state"

// callbackServer drives the browser half of the login flow. It is the
// inbound-request side of Authenticate: the code is read from the callback
// query string and handed to the client explicitly.
type callbackServer struct {
	client       *odnoklassniki.Client
	callbackPath string
	logger       logger
	done         chan<- struct{}

	// mu serializes logins: the exchange replaces the client's token, which
	// the user lookup and the printed result then read.
	mu sync.Mutex
}

// loginResult is the JSON written by a successful callback.
type loginResult struct {
	tokenOutput
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// login exchanges code and fetches the user it belongs to.
func (s *callbackServer) login(ctx context.Context, code string) (*loginResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.client.Authenticate(ctx, code); err != nil {
		s.logger.Warn("token exchange failed", "error", err)
		return nil, err
	}
	info, err := s.client.GetUserInfo(ctx)
	if err != nil {
		s.logger.Warn("user lookup failed", "error", err)
		return nil, err
	}
	s.logger.Info("logged in", "uid", info.UID, "name", info.Name)
	return &loginResult{newTokenOutput(s.client), info.UID, info.Name}, nil
}

// logger is the subset of *slog.Logger the server uses.
type logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// callbackPath returns the path component of redirectURI, or "/callback".
func callbackPath(redirectURI string) string {
	u, err := url.Parse(redirectURI)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "/callback"
	}
	return u.Path
}

func (s *callbackServer) routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleLogin).Methods(http.MethodGet)
	r.HandleFunc(s.callbackPath, s.handleCallback).Methods(http.MethodGet)
	return r
}

func (s *callbackServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := odnoklassniki.GenerateState()
	if err != nil {
		http.Error(w, "generate state: "+err.Error(), http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, s.client.LoginURL(odnoklassniki.WithState(state)), http.StatusFound)
}

func (s *callbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		s.logger.Warn("login refused", "error", e)
		http.Error(w, "login refused: "+e, http.StatusBadRequest)
		return
	}

	var expected string
	if c, err := r.Cookie(stateCookie); err == nil {
		expected = c.Value
	}
	if err := odnoklassniki.ValidateState(expected, q.Get("state")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	code := q.Get("code")
	if code == "" {
		http.Error(w, "missing code", http.StatusBadRequest)
		return
	}

	res, err := s.login(r.Context(), code)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = printJSON(w, res)

	if s.done != nil {
		select {
		case s.done <- struct{}{}:
		default:
		}
	}
}

func newServeCmd(a *app) *cobra.Command {
	var (
		listen string
		once   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local server that completes the browser login",
		Long: `serve listens on --listen. Open / in a browser to be sent to the
Odnoklassniki login page; the redirect URI must point back at this server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(false); err != nil {
				return err
			}
			done := make(chan struct{}, 1)
			s := &callbackServer{
				client:       a.client(),
				callbackPath: callbackPath(a.cfg.RedirectURI),
				logger:       a.logger,
			}
			if once {
				s.done = done
			}

			ln, err := net.Listen("tcp", listen)
			if err != nil {
				return err
			}
			srv := &http.Server{Handler: s.routes(), ReadHeaderTimeout: 10 * time.Second}
			a.logger.Info("listening", "addr", "http://"+ln.Addr().String()+"/", "callback", s.callbackPath)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				select {
				case <-done:
				case <-ctx.Done():
				}
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:8080", "address to listen on")
	cmd.Flags().BoolVar(&once, "once", false, "exit after the first successful login")
	return cmd
}
