// Command create-admin creates or promotes a back-office account.
// Privilege is a role attribute on the user row, so the first admin has
// to be bootstrapped from the command line.
package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/IgnacioLauriano/vive-salud/internal/config"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/user"
	"github.com/IgnacioLauriano/vive-salud/internal/repository/mysql"
	"github.com/IgnacioLauriano/vive-salud/internal/service"
)

func main() {
	var (
		name     = flag.String("name", "Administrator", "full name for a newly created account")
		email    = flag.String("email", "", "account email (required)")
		password = flag.String("password", "", "password for a newly created account")
	)
	flag.Parse()

	if *email == "" {
		log.Fatal("-email is required")
	}

	cfg, err := config.Load("./config")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db := mysql.Init(&cfg.MySQL)
	repo := mysql.NewUserRepository(db)
	ctx := context.Background()

	u, err := repo.GetByEmail(ctx, *email)
	switch {
	case err == nil:
		// Existing account, just promote it.
	case errors.Is(err, user.ErrNotFound):
		if *password == "" {
			log.Fatal("-password is required when the account does not exist yet")
		}
		svc := service.NewUserService(repo, &cfg.JWT)
		u, err = svc.Register(ctx, *name, *email, "", *password)
		if err != nil {
			log.Fatalf("create account: %v", err)
		}
	default:
		log.Fatalf("look up account: %v", err)
	}

	u.Role = user.RoleAdmin
	if err := repo.Update(ctx, u); err != nil {
		log.Fatalf("promote account: %v", err)
	}
	log.Printf("account %s (id %d) now has the admin role", u.Email, u.ID)
}
