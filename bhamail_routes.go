package bhamail

import (
	"github.com/bhamail/bhamail/config"
	"github.com/bhamail/bhamail/core"
	r "github.com/bhamail/bhamail/router"
)

func route(cfg *config.Config, ap *core.App) {
	ap.Router().Register(
		r.NewRoute(cfg.Endpoints.Signup).WithHandlerFunc(ap.SignupHandler),
		r.NewRoute(cfg.Endpoints.Login).WithHandlerFunc(ap.LoginHandler),
		r.NewRoute(cfg.Endpoints.Refresh).WithHandlerFunc(ap.RefreshHandler),
		r.NewRoute(cfg.Endpoints.Logout).WithHandlerFunc(ap.LogoutHandler),
		r.NewRoute(cfg.Endpoints.Setup2FA).WithHandlerFunc(ap.Setup2FAHandler),
		r.NewRoute(cfg.Endpoints.Verify2FA).WithHandlerFunc(ap.Verify2FAHandler),
		r.NewRoute(cfg.Endpoints.Disable2FA).WithHandlerFunc(ap.Disable2FAHandler),
		r.NewRoute(cfg.Endpoints.ForgotPassword).WithHandlerFunc(ap.ForgotPasswordHandler),
		r.NewRoute(cfg.Endpoints.ResetPassword).WithHandlerFunc(ap.ResetPasswordHandler),
		r.NewRoute(cfg.Endpoints.Me).WithHandlerFunc(ap.MeHandler),
	)
}
