package service

import (
	"context"
	"errors"

	// registers the JSON codec carrying user service messages
	_ "otmane/userbook/serializer"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UserServer is the gRPC server that provides user services
type UserServer struct {
	Service *UserService
}

// NewUserServer creates a new user server instance and returns it
func NewUserServer(service *UserService) *UserServer {
	return &UserServer{Service: service}
}

// CreateUser is a unary RPC to create a new user
func (server *UserServer) CreateUser(ctx context.Context, req *CreateUserRequest) (*CreateUserResponse, error) {
	log.Debug().Msg("receive a create-user request")

	if err := checkContextError(ctx); err != nil {
		return nil, err
	}

	user, err := server.Service.CreateUser(ctx, req.User)
	if err != nil {
		return nil, toStatus(err, "cannot create user")
	}

	return &CreateUserResponse{User: user}, nil
}

// UpdateUser is a unary RPC to replace an existing user
func (server *UserServer) UpdateUser(ctx context.Context, req *UpdateUserRequest) (*UpdateUserResponse, error) {
	log.Debug().Msg("receive an update-user request")

	if err := checkContextError(ctx); err != nil {
		return nil, err
	}

	user, err := server.Service.UpdateUser(ctx, req.User)
	if err != nil {
		return nil, toStatus(err, "cannot update user")
	}

	return &UpdateUserResponse{User: user}, nil
}

// GetUser is a unary RPC to find a user by id
func (server *UserServer) GetUser(ctx context.Context, req *GetUserRequest) (*GetUserResponse, error) {
	log.Debug().Str("id", req.ID).Msg("receive a get-user request")

	id, err := ParseUserID(req.ID)
	if err != nil {
		return nil, toStatus(err, "cannot get user")
	}

	user, err := server.Service.GetUser(ctx, id)
	if err != nil {
		return nil, toStatus(err, "cannot get user")
	}

	return &GetUserResponse{User: user}, nil
}

// ListUsers is a unary RPC returning all users
func (server *UserServer) ListUsers(ctx context.Context, _ *ListUsersRequest) (*ListUsersResponse, error) {
	log.Debug().Msg("receive a list-users request")

	users, err := server.Service.ListUsers(ctx)
	if err != nil {
		return nil, toStatus(err, "cannot list users")
	}

	return &ListUsersResponse{Users: users}, nil
}

// DeleteUser is a unary RPC to remove a user by id
func (server *UserServer) DeleteUser(ctx context.Context, req *DeleteUserRequest) (*DeleteUserResponse, error) {
	log.Debug().Str("id", req.ID).Msg("receive a delete-user request")

	id, err := ParseUserID(req.ID)
	if err != nil {
		return nil, toStatus(err, "cannot delete user")
	}

	err = server.Service.DeleteUser(ctx, id)
	if err != nil {
		return nil, toStatus(err, "cannot delete user")
	}

	return &DeleteUserResponse{}, nil
}

func toStatus(err error, msg string) error {
	var validationErr *ValidationError

	switch {
	case errors.As(err, &validationErr):
		return status.Error(codes.InvalidArgument, validationErr.Error())
	case errors.Is(err, ErrNotFound):
		return status.Errorf(codes.NotFound, "%s: %v", msg, err)
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s: %v", msg, err)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s: %v", msg, err)
	default:
		return logError(status.Errorf(codes.Internal, "%s: %v", msg, err))
	}
}

func checkContextError(ctx context.Context) error {
	switch ctx.Err() {
	case context.Canceled:
		return logError(status.Error(codes.Canceled, "request is cancelled"))
	case context.DeadlineExceeded:
		return logError(status.Error(codes.DeadlineExceeded, "deadline exceeded"))
	default:
		return nil
	}
}

func logError(err error) error {
	if err != nil {
		log.Error().Err(err).Msg("request failed")
	}

	return err
}
