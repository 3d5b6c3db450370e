// Package odnoklassniki is a client for the Odnoklassniki (OK.ru) OAuth login
// flow and REST API.
//
// It builds the authorization URL, exchanges the callback code for an access
// token, and issues signed method calls against the fb.do endpoint. The
// client is framework-agnostic: reading the code from the callback request is
// left to the caller.
//
// # Quick Start
//
//	client := odnoklassniki.New(clientID, applicationKey, clientSecret, []string{"VALUABLE_ACCESS"}).
//	    SetRedirectURI("https://example.com/ok/callback")
//
//	// 1. Redirect the user to the login page.
//	http.Redirect(w, r, client.LoginURL(), http.StatusFound)
//
//	// 2. In the callback handler, exchange the code.
//	if err := client.Authenticate(ctx, r.URL.Query().Get("code")); err != nil {
//	    log.Fatal(err)
//	}
//
//	// 3. Call the API.
//	user, err := client.GetUser(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(user["uid"], user["name"])
//
// Any other method goes through [Client.Call], which signs the request:
//
//	resp, err := client.Call(ctx, "users.getInfo", url.Values{
//	    "uids":   {"123"},
//	    "fields": {"name,pic_1"},
//	})
//
// # Error Handling
//
// Every failure is an [*APIError]. Its Kind tells a transport failure, an
// undecodable response, an error reported by the API and a response missing
// a required field apart; sentinels such as [ErrAPI] and [ErrResponseParse]
// work with [errors.Is]. API errors carry the numeric error_code in Code.
//
//	var apiErr *odnoklassniki.APIError
//	if errors.As(err, &apiErr) && apiErr.Kind == odnoklassniki.ErrKindAPI {
//	    log.Printf("code=%d msg=%s", apiErr.Code, apiErr.Message)
//	}
//
// # Options
//
//	client := odnoklassniki.New(clientID, applicationKey, clientSecret, nil,
//	    odnoklassniki.WithHTTPClient(customClient),
//	    odnoklassniki.WithLogger(slog.Default()),
//	    odnoklassniki.WithAccessToken(savedToken),
//	)
package odnoklassniki
