package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simp-lee/odnoklassniki"
)

func newLoginURLCmd(a *app) *cobra.Command {
	var state, layout string

	cmd := &cobra.Command{
		Use:   "login-url",
		Short: "Print the authorization URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.ClientID == "" {
				return fmt.Errorf("missing configuration: client_id")
			}
			u := a.client().LoginURL(odnoklassniki.WithState(state), odnoklassniki.WithLayout(layout))
			_, err := fmt.Fprintln(cmd.OutOrStdout(), u)
			return err
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "state value echoed back to the redirect URI")
	cmd.Flags().StringVar(&layout, "layout", "", "login page layout (w, m or a)")
	return cmd
}

// tokenOutput is the JSON printed after a successful exchange.
type tokenOutput struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	Expiry       string `json:"expiry,omitempty"`
}

func newTokenOutput(c *odnoklassniki.Client) tokenOutput {
	tok := c.Token()
	out := tokenOutput{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if !tok.Expiry.IsZero() {
		out.Expiry = tok.Expiry.UTC().Format("2006-01-02T15:04:05Z")
	}
	return out
}

func newExchangeCmd(a *app) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Exchange an authorization code for an access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(false); err != nil {
				return err
			}
			c := a.client()
			if err := c.Authenticate(cmd.Context(), code); err != nil {
				return err
			}
			return a.print(cmd, newTokenOutput(c))
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "authorization code from the redirect")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

func newUserCmd(a *app) *cobra.Command {
	var tableOut bool

	cmd := &cobra.Command{
		Use:   "user",
		Short: "Show the user owning the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(true); err != nil {
				return err
			}
			c := a.client()
			if tableOut {
				info, err := c.GetUserInfo(cmd.Context())
				if err != nil {
					return err
				}
				printUserTable(cmd.OutOrStdout(), info)
				return nil
			}
			resp, err := c.GetUser(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, resp)
		},
	}
	cmd.Flags().BoolVar(&tableOut, "table", false, "print the main profile fields as a table")
	return cmd
}

func newCallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "call METHOD [key=value ...]",
		Short: "Call an API method with a signed request",
		Example: `  okauth call users.getInfo uids=574214353354 fields=name,pic_1
  okauth call friends.get`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(true); err != nil {
				return err
			}
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}
			var out any
			if err := a.client().CallInto(cmd.Context(), args[0], params, &out); err != nil {
				return err
			}
			return a.print(cmd, out)
		},
	}
}

// parseParams turns key=value arguments into url.Values.
func parseParams(args []string) (url.Values, error) {
	params := url.Values{}
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid parameter %q: want key=value", arg)
		}
		params.Add(k, v)
	}
	return params, nil
}
