package fabric

import (
	"context"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	"github.com/hyperledger/fabric-gateway/pkg/client"
	"github.com/hyperledger/fabric-gateway/pkg/identity"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/landchain-vn/landchain/modules/registry/domain/ledger"
	"github.com/landchain-vn/landchain/pkg/configuration"
	"github.com/landchain-vn/landchain/pkg/metrics"
)

// Gateway implements ledger.Client over the Fabric Gateway API. Writes run
// the proposal, endorse, submit, commit-status pipeline so the minted
// transaction ID is known before ordering; reads evaluate on a single peer.
type Gateway struct {
	contract        *client.Contract
	gateway         *client.Gateway
	conn            *grpc.ClientConn
	submitTimeout   time.Duration
	evaluateTimeout time.Duration
	evaluateRetries int
}

func NewGateway(conf *configuration.Configuration) (*Gateway, error) {
	conn, err := newPeerConnection(&conf.Fabric)
	if err != nil {
		return nil, err
	}

	id, sign, err := newIdentity(&conf.Fabric)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	gw, err := client.Connect(id, client.WithSign(sign), client.WithClientConnection(conn))
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "failed to connect to gateway")
	}

	network := gw.GetNetwork(conf.Fabric.ChannelName)
	return &Gateway{
		contract:        network.GetContract(conf.Fabric.ChaincodeName),
		gateway:         gw,
		conn:            conn,
		submitTimeout:   conf.Ledger.SubmitTimeout,
		evaluateTimeout: conf.Ledger.EvaluateTimeout,
		evaluateRetries: conf.Ledger.EvaluateRetries,
	}, nil
}

func newPeerConnection(opts *configuration.FabricOptions) (*grpc.ClientConn, error) {
	tlsCertPEM, err := os.ReadFile(opts.TLSCertPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read peer TLS certificate")
	}
	tlsCert, err := identity.CertificateFromPEM(tlsCertPEM)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse peer TLS certificate")
	}

	pool := x509.NewCertPool()
	pool.AddCert(tlsCert)
	creds := credentials.NewClientTLSFromCert(pool, opts.GatewayPeer)

	conn, err := grpc.NewClient(opts.PeerEndpoint, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gRPC connection")
	}
	return conn, nil
}

func newIdentity(opts *configuration.FabricOptions) (*identity.X509Identity, identity.Sign, error) {
	certPEM, err := os.ReadFile(opts.CertPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read enrollment certificate")
	}
	cert, err := identity.CertificateFromPEM(certPEM)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to parse enrollment certificate")
	}
	id, err := identity.NewX509Identity(opts.MSPID, cert)
	if err != nil {
		return nil, nil, err
	}

	keyPEM, err := os.ReadFile(opts.KeyPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read private key")
	}
	key, err := identity.PrivateKeyFromPEM(keyPEM)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to parse private key")
	}
	sign, err := identity.NewPrivateKeySign(key)
	if err != nil {
		return nil, nil, err
	}
	return id, sign, nil
}

func (g *Gateway) Submit(ctx context.Context, fn string, args []string, opts ...ledger.SubmitOption) (*ledger.SubmitResult, error) {
	started := time.Now()
	res, err := g.submit(ctx, fn, args, opts...)
	metrics.ObserveLedgerCall("submit", fn, outcome(err), time.Since(started))
	return res, err
}

func (g *Gateway) submit(ctx context.Context, fn string, args []string, opts ...ledger.SubmitOption) (*ledger.SubmitResult, error) {
	options := ledger.SubmitOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	ctx, cancel := context.WithTimeout(ctx, g.submitTimeout)
	defer cancel()

	proposalOpts := []client.ProposalOption{client.WithArguments(args...)}
	if len(options.EndorsingOrgs) > 0 {
		proposalOpts = append(proposalOpts, client.WithEndorsingOrganizations(options.EndorsingOrgs...))
	}

	proposal, err := g.contract.NewProposal(fn, proposalOpts...)
	if err != nil {
		return nil, classify(err)
	}
	txn, err := proposal.EndorseWithContext(ctx)
	if err != nil {
		return nil, classify(err)
	}
	commit, err := txn.SubmitWithContext(ctx)
	if err != nil {
		return nil, classify(err)
	}
	status, err := commit.StatusWithContext(ctx)
	if err != nil {
		return nil, classify(err)
	}
	if !status.Successful {
		return nil, ledger.ErrRejected.WithMessage(
			fmt.Sprintf("transaction %s failed to commit with validation code %d", status.TransactionID, int32(status.Code)))
	}

	return &ledger.SubmitResult{
		TxID:    proposal.TransactionID(),
		Payload: txn.Result(),
	}, nil
}

// Evaluate retries reads up to the configured bound. Submissions are never
// retried to avoid double-writes.
func (g *Gateway) Evaluate(ctx context.Context, fn string, args ...string) ([]byte, error) {
	started := time.Now()
	raw, err := evaluateWithRetry(ctx, g.evaluateRetries, g.evaluateTimeout, func(callCtx context.Context) ([]byte, error) {
		return g.contract.EvaluateWithContext(callCtx, fn, client.WithArguments(args...))
	})
	metrics.ObserveLedgerCall("evaluate", fn, outcome(err), time.Since(started))
	return raw, err
}

// evaluateWithRetry retries connectivity failures only. A deterministic
// chaincode rejection fails on the first attempt; retrying it cannot change
// the answer.
func evaluateWithRetry(ctx context.Context, retries int, timeout time.Duration, call func(context.Context) ([]byte, error)) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		raw, err := call(callCtx)
		cancel()
		if err == nil {
			return raw, nil
		}
		lastErr = classify(err)
		if !errors.Is(lastErr, ledger.ErrUnavailable) || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ledger.ErrUnavailable):
		return "unavailable"
	default:
		return "rejected"
	}
}

func (g *Gateway) Close() error {
	g.gateway.Close()
	return g.conn.Close()
}

// classify separates "the ledger said no" from "the ledger never answered".
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ledger.ErrUnavailable.WithMessage(err.Error())
	}
	if st, ok := grpcstatus.FromError(err); ok {
		switch st.Code() {
		case codes.Unavailable, codes.DeadlineExceeded:
			return ledger.ErrUnavailable.WithMessage(st.Message())
		}
	}
	return ledger.ErrRejected.WithMessage(err.Error())
}
