package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/landchain-vn/landchain/pkg/logging"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existingFiles = append(existingFiles, file)
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

// FabricOptions configures the gateway connection of the orchestration layer.
// Certificates and keys are the enrollment material of the backend's own
// gateway identity; end-user identities live in the external wallet service.
type FabricOptions struct {
	MSPID         string `env:"FABRIC_MSP_ID" envDefault:"Org1MSP"`
	PeerEndpoint  string `env:"FABRIC_PEER_ENDPOINT" envDefault:"localhost:7051"`
	GatewayPeer   string `env:"FABRIC_GATEWAY_PEER" envDefault:"peer0.org1.example.com"`
	ChannelName   string `env:"FABRIC_CHANNEL" envDefault:"landchannel"`
	ChaincodeName string `env:"FABRIC_CHAINCODE" envDefault:"land-registry"`
	CertPath      string `env:"FABRIC_CERT_PATH"`
	KeyPath       string `env:"FABRIC_KEY_PATH"`
	TLSCertPath   string `env:"FABRIC_TLS_CERT_PATH"`
}

// LedgerOptions bounds ledger calls and controls the legacy transaction-ID
// resolver. The gateway returns the minted transaction ID on submission, so
// the query-based resolver is only a fallback for chaincode versions that
// predate that behavior.
type LedgerOptions struct {
	SubmitTimeout        time.Duration `env:"LEDGER_SUBMIT_TIMEOUT" envDefault:"30s"`
	EvaluateTimeout      time.Duration `env:"LEDGER_EVALUATE_TIMEOUT" envDefault:"10s"`
	EvaluateRetries      int           `env:"LEDGER_EVALUATE_RETRIES" envDefault:"2"`
	LegacyTxIDResolution bool          `env:"LEDGER_LEGACY_TXID_RESOLUTION" envDefault:"false"`
}

func (o *LedgerOptions) Validate() error {
	if o.SubmitTimeout <= 0 {
		return fmt.Errorf("LEDGER_SUBMIT_TIMEOUT must be positive, got %s", o.SubmitTimeout)
	}
	if o.EvaluateTimeout <= 0 {
		return fmt.Errorf("LEDGER_EVALUATE_TIMEOUT must be positive, got %s", o.EvaluateTimeout)
	}
	if o.EvaluateRetries < 0 {
		return fmt.Errorf("LEDGER_EVALUATE_RETRIES must be non-negative, got %d", o.EvaluateRetries)
	}
	return nil
}

// EndorsementOptions lists every member organization of the channel. The
// endorsement resolver falls back to this full set when a transaction record
// carries no explicit organization list.
type EndorsementOptions struct {
	MemberOrgs string `env:"ENDORSEMENT_MEMBER_ORGS" envDefault:"Org1MSP,Org2MSP,Org3MSP"`
}

func (o *EndorsementOptions) OrgList() []string {
	parts := strings.Split(o.MemberOrgs, ",")
	orgs := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			orgs = append(orgs, trimmed)
		}
	}
	return orgs
}

func (o *EndorsementOptions) Validate() error {
	if len(o.OrgList()) == 0 {
		return fmt.Errorf("ENDORSEMENT_MEMBER_ORGS must name at least one organization")
	}
	return nil
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
	Path    string `env:"PROMETHEUS_METRICS_PATH" envDefault:"/debug/prometheus"`
}

type Configuration struct {
	Fabric      FabricOptions
	Ledger      LedgerOptions
	Endorsement EndorsementOptions
	Prometheus  PrometheusOptions

	ServerPort       int    `env:"PORT" envDefault:"3000"`
	GoAppEnvironment string `env:"GO_APP_ENV" envDefault:"development"`
	SocketAddress    string `env:"-"`
	Domain           string `env:"DOMAIN" envDefault:"localhost"`
	Origin           string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	AllowedOrigins   string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3001"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogPath          string `env:"LOG_PATH" envDefault:"./logs/app.log"`
	RequestIDHeader  string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	RealIPHeader     string `env:"REAL_IP_HEADER" envDefault:"X-Real-IP"`

	logFile *os.File
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

func (c *Configuration) AllowedOriginList() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}

	if err := c.Ledger.Validate(); err != nil {
		return fmt.Errorf("ledger configuration error: %w", err)
	}
	if err := c.Endorsement.Validate(); err != nil {
		return fmt.Errorf("endorsement configuration error: %w", err)
	}

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger

	if c.GoAppEnvironment == Production {
		c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	} else {
		c.SocketAddress = fmt.Sprintf("localhost:%d", c.ServerPort)
	}

	return nil
}

// Unload handles a graceful shutdown.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}
}
