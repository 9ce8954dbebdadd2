package main

import (
	"encoding/json"
	"fmt"
	"os"

	"otmane/userbook/client"
	"otmane/userbook/logger"
	"otmane/userbook/sample"
	"otmane/userbook/serializer"
	"otmane/userbook/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

func dial(c *cli.Context) (*grpc.ClientConn, error) {
	address := c.String("address")
	log.Debug().Str("address", address).Msg("dial server")

	conn, err := grpc.Dial(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("cannot dial the server: %w", err)
	}
	return conn, nil
}

func withUserClient(action func(*cli.Context, *client.UserClient) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		conn, err := dial(c)
		if err != nil {
			return err
		}
		defer conn.Close()

		return action(c, client.NewUserClient(conn))
	}
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func userFromFlags(c *cli.Context) (*service.User, error) {
	user := &service.User{
		FirstName: c.String("first-name"),
		Email:     c.String("email"),
	}

	if c.IsSet("id") {
		id, err := uuid.Parse(c.String("id"))
		if err != nil {
			return nil, fmt.Errorf("invalid id: %w", err)
		}
		user.ID = id
	}
	if c.IsSet("last-name") {
		lastName := c.String("last-name")
		user.LastName = &lastName
	}
	if c.IsSet("date-of-birth") {
		dob, err := service.ParseDate(c.String("date-of-birth"))
		if err != nil {
			return nil, fmt.Errorf("invalid date of birth: %w", err)
		}
		user.DateOfBirth = dob
	}

	return user, nil
}

func userFlags(withID bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "first-name", Usage: "first name"},
		&cli.StringFlag{Name: "last-name", Usage: "last name"},
		&cli.StringFlag{Name: "email", Usage: "email address"},
		&cli.StringFlag{Name: "date-of-birth", Usage: "date of birth as YYYY-MM-DD"},
	}
	if withID {
		flags = append([]cli.Flag{&cli.StringFlag{Name: "id", Usage: "user id", Required: true}}, flags...)
	}
	return flags
}

func createUser(c *cli.Context, userClient *client.UserClient) error {
	user, err := userFromFlags(c)
	if err != nil {
		return err
	}

	created, err := userClient.CreateUser(c.Context, user)
	if err != nil {
		return fmt.Errorf("cannot create user: %w", err)
	}

	log.Info().Str("id", created.ID.String()).Msg("created user")
	return printJSON(created)
}

func updateUser(c *cli.Context, userClient *client.UserClient) error {
	user, err := userFromFlags(c)
	if err != nil {
		return err
	}

	updated, err := userClient.UpdateUser(c.Context, user)
	if err != nil {
		return fmt.Errorf("cannot update user: %w", err)
	}

	return printJSON(updated)
}

func getUser(c *cli.Context, userClient *client.UserClient) error {
	user, err := userClient.GetUser(c.Context, c.Args().First())
	if err != nil {
		if sts, ok := status.FromError(err); ok && sts.Code() == codes.NotFound {
			log.Warn().Str("id", c.Args().First()).Msg("user not found")
			return nil
		}
		return fmt.Errorf("cannot get user: %w", err)
	}

	return printJSON(user)
}

func listUsers(c *cli.Context, userClient *client.UserClient) error {
	users, err := userClient.ListUsers(c.Context)
	if err != nil {
		return fmt.Errorf("cannot list users: %w", err)
	}

	return printJSON(users)
}

func deleteUser(c *cli.Context, userClient *client.UserClient) error {
	err := userClient.DeleteUser(c.Context, c.Args().First())
	if err != nil {
		return fmt.Errorf("cannot delete user: %w", err)
	}

	log.Info().Str("id", c.Args().First()).Msg("deleted user")
	return nil
}

func seedUsers(c *cli.Context, userClient *client.UserClient) error {
	n := c.Int("count")
	for i := 0; i < n; i++ {
		user, err := userClient.CreateUser(c.Context, sample.NewUser())
		if err != nil {
			sts, ok := status.FromError(err)
			if ok && sts.Code() == codes.InvalidArgument {
				log.Warn().Str("reason", sts.Message()).Msg("sample user rejected")
				continue
			}
			return fmt.Errorf("cannot create user: %w", err)
		}

		log.Info().Str("id", user.ID.String()).Str("email", user.Email).Msg("created user")
	}
	return nil
}

func checkHealth(c *cli.Context) error {
	conn, err := dial(c)
	if err != nil {
		return err
	}
	defer conn.Close()

	res, err := client.NewHealthClient(conn).Check(c.Context, c.Args().First())
	if err != nil {
		return fmt.Errorf("cannot check health: %w", err)
	}

	data, err := serializer.ProtobufToJSON(res)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}

func main() {
	app := &cli.App{
		Name:  "userbook",
		Usage: "Manage users through the gRPC API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "address", Aliases: []string{"a"}, Usage: "the server's address", Value: "localhost:5050"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", Value: "info"},
		},
		Before: func(c *cli.Context) error {
			logger.InitWithWriter(os.Stderr, c.String("log-level"), "console")
			return nil
		},
		Commands: []*cli.Command{
			{Name: "create", Usage: "create a user", Flags: userFlags(false), Action: withUserClient(createUser)},
			{Name: "update", Usage: "replace a user", Flags: userFlags(true), Action: withUserClient(updateUser)},
			{Name: "get", Usage: "show a user", ArgsUsage: "ID", Action: withUserClient(getUser)},
			{Name: "list", Usage: "list all users", Action: withUserClient(listUsers)},
			{Name: "delete", Usage: "delete a user", ArgsUsage: "ID", Action: withUserClient(deleteUser)},
			{
				Name:   "seed",
				Usage:  "create random sample users",
				Flags:  []cli.Flag{&cli.IntFlag{Name: "count", Value: 10, Usage: "number of users"}},
				Action: withUserClient(seedUsers),
			},
			{Name: "health", Usage: "check server health", ArgsUsage: "[SERVICE]", Action: checkHealth},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}
