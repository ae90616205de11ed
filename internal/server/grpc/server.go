// Package grpc exposes the services over lumen.v1.ProgressService.
package grpc

import (
	"context"
	"fmt"
	"net"

	"github.com/dmitrijs2005/lumen/internal/api"
	"github.com/dmitrijs2005/lumen/internal/logging"
	"github.com/dmitrijs2005/lumen/internal/server/services"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type GRPCServer struct {
	api.UnimplementedProgressServiceServer
	address      string
	logger       logging.Logger
	session      *services.SessionService
	mailbox      *services.MailboxService
	admin        *services.AdminService
	pinger       Pinger
	jwtSecret    []byte
	adminKeyHash []byte
}

// NewGRPCServer wires the handlers. adminKeyHash is a bcrypt hash; when it
// is empty admin calls need only the admin role.
func NewGRPCServer(a string, l logging.Logger, ss *services.SessionService, ms *services.MailboxService, as *services.AdminService, p Pinger, secretKey, adminKeyHash string) (*GRPCServer, error) {
	s := &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		session:   ss,
		mailbox:   ms,
		admin:     as,
		pinger:    p,
		jwtSecret: []byte(secretKey),
	}
	if adminKeyHash != "" {
		if _, err := bcrypt.Cost([]byte(adminKeyHash)); err != nil {
			return nil, fmt.Errorf("admin key hash: %w", err)
		}
		s.adminKeyHash = []byte(adminKeyHash)
	}
	return s, nil
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.loggingInterceptor,
		s.accessTokenInterceptor,
		s.adminKeyInterceptor,
	))
	api.RegisterProgressServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
