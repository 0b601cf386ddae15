// cmd/mintoken — mints a development access token for the console API.
// Usage: go run ./cmd/mintoken -employee <uuid> -role manager
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/middleware"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func main() {
	employee := flag.String("employee", "", "employee UUID (random when empty)")
	role := flag.String("role", "manager", "console role")
	hours := flag.Int("hours", 8, "token lifetime in hours")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	if !model.Role(*role).Valid() {
		log.Fatalf("unknown role %q", *role)
	}

	id := *employee
	if id == "" {
		id = uuid.NewString()
	} else if _, err := uuid.Parse(id); err != nil {
		log.Fatalf("invalid employee id: %v", err)
	}

	now := time.Now()
	claims := middleware.JWTClaims{
		EmployeeID: id,
		Role:       *role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(*hours) * time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		log.Fatalf("sign error: %v", err)
	}
	fmt.Println(token)
}
