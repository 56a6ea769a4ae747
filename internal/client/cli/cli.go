// Package cli implements the stravadash client commands on top of the auth and
// data services. Commands write to iocli.IO and return errors; cmd/client decides
// how to report them.
package cli

import (
	"errors"

	"github.com/iudanet/stravadash/internal/client/auth"
	"github.com/iudanet/stravadash/internal/client/data"
	"github.com/iudanet/stravadash/internal/client/iocli"
	"github.com/iudanet/stravadash/internal/client/storage"
)

// ErrUnknownCommand is returned by Run for a command it does not know
var ErrUnknownCommand = errors.New("unknown command")

// Session is the view of api.Client the status command needs
type Session interface {
	Credential() storage.Credential
	IsExpired() bool
}

type Cli struct {
	io      iocli.IO
	auth    auth.AuthService
	session Session
	data    *data.Service
}

func New(io iocli.IO, authService auth.AuthService, session Session, dataService *data.Service) *Cli {
	return &Cli{
		io:      io,
		auth:    authService,
		session: session,
		data:    dataService,
	}
}

func PrintUsage(io iocli.IO) {
	io.Println("stravadash client")
	io.Println()
	io.Println("Usage:")
	io.Println("  stravadash [OPTIONS] COMMAND [ARGS]")
	io.Println()
	io.Println("Options:")
	io.Println("  --version                Show version information")
	io.Println("  --config PATH            Config file (yaml, json or toml)")
	io.Println("  --db PATH                Path to the token database (default: stravadash.db)")
	io.Println("  --cache PATH             Path to the activity cache (default: stravadash-cache.sqlite)")
	io.Println("  --log-level LEVEL        debug, info, warn or error (default: info)")
	io.Println()
	io.Println("Environment:")
	io.Println("  STRAVADASH_CLIENT_ID, STRAVADASH_CLIENT_SECRET   Strava application credentials")
	io.Println("  STRAVADASH_PASSPHRASE                           Encrypt stored tokens with this passphrase")
	io.Println()
	io.Println("Commands:")
	io.Println("  login                    Authorize with Strava")
	io.Println("  logout                   Remove stored tokens and cached data")
	io.Println("  status                   Show token status")
	io.Println("  athlete                  Show the athlete profile")
	io.Println("  activities [-page N] [-per-page N] [-all] [-json]")
	io.Println("             [-type T] [-from YYYY-MM-DD] [-to YYYY-MM-DD]")
	io.Println("                           List activities")
	io.Println("  activity <id>            Show activity details")
	io.Println("  laps <id>                Show activity laps")
	io.Println("  streams <id> [-keys K]   Show activity data streams")
	io.Println("  stats                    Show athlete totals")
	io.Println("  route <id> [-detailed] [-format geojson|gpx]")
	io.Println("                           Print the activity route")
	io.Println("  routes [-type T] [-from YYYY-MM-DD] [-to YYYY-MM-DD]")
	io.Println("                           Print all routes as a GeoJSON FeatureCollection")
	io.Println("  records                  Show personal records")
	io.Println("  summary [-period week|month|year|all] [-offset N] [-json]")
	io.Println("                           Show totals and monthly progression")
	io.Println()
	io.Println("Examples:")
	io.Println("  stravadash login")
	io.Println("  stravadash activities -all")
	io.Println("  stravadash activities -all -type Run -from 2024-01-01")
	io.Println("  stravadash summary -period month -offset -1")
	io.Println("  stravadash route 1234567890 -format gpx > run.gpx")
}
