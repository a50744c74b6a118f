package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github/chapool/go-txsigner/internal/util"
)

// ApprovalMode selects how sign requests get approved in server mode
type ApprovalMode string

const (
	// ApprovalModeQueue parks prompts until they are resolved via /api/v1/approvals
	ApprovalModeQueue ApprovalMode = "queue"
	// ApprovalModeTerminal asks on the server's terminal
	ApprovalModeTerminal ApprovalMode = "terminal"
	// ApprovalModeReject rejects every request, the server can only hand out its public key
	ApprovalModeReject ApprovalMode = "reject"
)

type EchoServer struct {
	Debug                         bool
	ListenAddress                 string
	EnableCORSMiddleware          bool
	EnableLoggerMiddleware        bool
	EnableRecoverMiddleware       bool
	EnableRequestIDMiddleware     bool
	EnableTrailingSlashMiddleware bool
	EnableMetricsMiddleware       bool
	BodyLimit                     string
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	LogRequestHeader   bool
	LogResponseHeader  bool
	PrettyPrintConsole bool
}

type ManagementServer struct {
	Secret                  string `json:"-"` // sensitive
	ReadinessTimeout        time.Duration
	LivenessTimeout         time.Duration
	ProbeWriteablePathsAbs  []string
	ProbeWriteableTouchfile string
}

// SignerServer configures key source and approval of the signing service
type SignerServer struct {
	CoinType        uint32
	ApprovalMode    ApprovalMode
	ApprovalTimeout time.Duration

	// Exactly one of these may be set; otherwise the secret is prompted for at startup
	Mnemonic     string `json:"-"` // sensitive
	MnemonicFile string
	Passphrase   string `json:"-"` // sensitive
	PrivateKey   string `json:"-"` // sensitive, hex
}

type Server struct {
	Echo       EchoServer
	Logger     LoggerServer
	Management ManagementServer
	Signer     SignerServer
}

// DefaultServiceConfigFromEnv returns the server config as parsed from environment variables
// and their respective defaults defined below.
// We don't expect that ENV_VARs change while we are running our application or our tests
// (and it would be a bad thing to do anyways with parallel testing).
// Do NOT use os.Setenv / os.Unsetenv in tests utilizing DefaultServiceConfigFromEnv()!
func DefaultServiceConfigFromEnv() Server {
	// An `.env.local` file in your project root can override the currently set ENV variables.
	//
	// We never automatically apply `.env.local` when running "go test" as these ENV variables
	// may be sensitive (e.g. secrets to external APIs) and applying them modifies the process
	// global "os.Env" state (it should be applied via t.Setenv instead).
	if !util.RunningInTest() {
		DotEnvTryLoad(filepath.Join(util.GetProjectRootDir(), ".env.local"), os.Setenv)
	}

	return Server{
		Echo: EchoServer{
			Debug:                         util.GetEnvAsBool("SERVER_ECHO_DEBUG", false),
			ListenAddress:                 util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			EnableCORSMiddleware:          util.GetEnvAsBool("SERVER_ECHO_ENABLE_CORS_MIDDLEWARE", true),
			EnableLoggerMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
			EnableRecoverMiddleware:       util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:     util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableTrailingSlashMiddleware: util.GetEnvAsBool("SERVER_ECHO_ENABLE_TRAILING_SLASH_MIDDLEWARE", true),
			EnableMetricsMiddleware:       util.GetEnvAsBool("SERVER_ECHO_ENABLE_METRICS_MIDDLEWARE", true),
			BodyLimit:                     util.GetEnv("SERVER_ECHO_BODY_LIMIT", "8M"),
		},
		Logger: LoggerServer{
			Level:              util.GetEnvAsLogLevel("SERVER_LOGGER_LEVEL", zerolog.DebugLevel),
			RequestLevel:       util.GetEnvAsLogLevel("SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel),
			LogRequestHeader:   util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_HEADER", false),
			LogResponseHeader:  util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_HEADER", false),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Management: ManagementServer{
			Secret:                  util.GetMgmtSecret("SERVER_MANAGEMENT_SECRET"),
			ReadinessTimeout:        util.GetEnvAsDuration("SERVER_MANAGEMENT_READINESS_TIMEOUT", 4*time.Second),
			LivenessTimeout:         util.GetEnvAsDuration("SERVER_MANAGEMENT_LIVENESS_TIMEOUT", 9*time.Second),
			ProbeWriteablePathsAbs:  util.GetEnvAsStringArr("SERVER_MANAGEMENT_PROBE_WRITEABLE_PATHS_ABS", []string{os.TempDir()}, ","),
			ProbeWriteableTouchfile: util.GetEnv("SERVER_MANAGEMENT_PROBE_WRITEABLE_TOUCHFILE", ".healthy"),
		},
		Signer: SignerServer{
			CoinType:        util.GetEnvAsUint32("SIGNER_COIN_TYPE", 60),
			ApprovalMode:    ApprovalMode(util.GetEnv("SIGNER_APPROVAL_MODE", string(ApprovalModeQueue))),
			ApprovalTimeout: util.GetEnvAsDuration("SIGNER_APPROVAL_TIMEOUT", 5*time.Minute),
			Mnemonic:        util.GetEnv("SIGNER_MNEMONIC", ""),
			MnemonicFile:    util.GetEnv("SIGNER_MNEMONIC_FILE", ""),
			Passphrase:      util.GetEnv("SIGNER_PASSPHRASE", ""),
			PrivateKey:      util.GetEnv("SIGNER_PRIVATE_KEY", ""),
		},
	}
}

// Validate checks values DefaultServiceConfigFromEnv can't fall back for
func (s Server) Validate() error {
	secrets := 0
	for _, secret := range []string{s.Signer.Mnemonic, s.Signer.MnemonicFile, s.Signer.PrivateKey} {
		if secret != "" {
			secrets++
		}
	}

	err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(s.Echo.ListenAddress, "SERVER_ECHO_LISTEN_ADDRESS"),
		vala.StringNotEmpty(string(s.Signer.ApprovalMode), "SIGNER_APPROVAL_MODE"),
		vala.GreaterThan(2, secrets, "number of SIGNER_MNEMONIC, SIGNER_MNEMONIC_FILE and SIGNER_PRIVATE_KEY set"),
	).Check()
	if err != nil {
		return errors.Wrap(err, "invalid server config")
	}

	switch s.Signer.ApprovalMode {
	case ApprovalModeQueue, ApprovalModeTerminal, ApprovalModeReject:
	default:
		return errors.Errorf("invalid server config: unknown SIGNER_APPROVAL_MODE %q", s.Signer.ApprovalMode)
	}

	if s.Signer.CoinType >= 1<<31 {
		return errors.Errorf("invalid server config: SIGNER_COIN_TYPE %d must be below 2^31", s.Signer.CoinType)
	}

	if s.Signer.ApprovalTimeout < 0 {
		return errors.New("invalid server config: SIGNER_APPROVAL_TIMEOUT must not be negative")
	}

	return nil
}
