package client

import (
	"context"
	"time"

	"google.golang.org/grpc"

	"otmane/userbook/serializer"
	"otmane/userbook/service"
)

const callTimeout = 5 * time.Second

// UserClient is a client to call user service RPCs
type UserClient struct {
	cc *grpc.ClientConn
}

// NewUserClient returns a new user client
func NewUserClient(cc *grpc.ClientConn) *UserClient {
	return &UserClient{cc: cc}
}

func (c *UserClient) invoke(ctx context.Context, method string, req, res interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	return c.cc.Invoke(ctx, method, req, res, grpc.CallContentSubtype(serializer.JSONCodecName))
}

// CreateUser creates a user and returns the stored record
func (c *UserClient) CreateUser(ctx context.Context, user *service.User) (*service.User, error) {
	res := &service.CreateUserResponse{}
	err := c.invoke(ctx, service.UserServiceCreateUserMethod, &service.CreateUserRequest{User: user}, res)
	if err != nil {
		return nil, err
	}
	return res.User, nil
}

// UpdateUser replaces a user and returns the stored record
func (c *UserClient) UpdateUser(ctx context.Context, user *service.User) (*service.User, error) {
	res := &service.UpdateUserResponse{}
	err := c.invoke(ctx, service.UserServiceUpdateUserMethod, &service.UpdateUserRequest{User: user}, res)
	if err != nil {
		return nil, err
	}
	return res.User, nil
}

// GetUser finds a user by id
func (c *UserClient) GetUser(ctx context.Context, id string) (*service.User, error) {
	res := &service.GetUserResponse{}
	err := c.invoke(ctx, service.UserServiceGetUserMethod, &service.GetUserRequest{ID: id}, res)
	if err != nil {
		return nil, err
	}
	return res.User, nil
}

// ListUsers returns all users
func (c *UserClient) ListUsers(ctx context.Context) ([]*service.User, error) {
	res := &service.ListUsersResponse{}
	err := c.invoke(ctx, service.UserServiceListUsersMethod, &service.ListUsersRequest{}, res)
	if err != nil {
		return nil, err
	}
	return res.Users, nil
}

// DeleteUser removes a user by id
func (c *UserClient) DeleteUser(ctx context.Context, id string) error {
	return c.invoke(ctx, service.UserServiceDeleteUserMethod, &service.DeleteUserRequest{ID: id}, &service.DeleteUserResponse{})
}
