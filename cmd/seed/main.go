package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"catalog/internal/config"
	"catalog/internal/db"
	"catalog/internal/errors"
	"catalog/internal/model"
	"catalog/internal/repository"
)

const defaultPassword = "123456"

type productFixture struct {
	name       string
	price      string
	imgSlug    string
	categories []string
}

var roleFixtures = []string{"ROLE_OPERATOR", "ROLE_ADMIN"}

var categoryFixtures = []string{"Books", "Electronics", "Computers"}

var productFixtures = []productFixture{
	{"The Lord of the Rings", "90.50", "1-big", []string{"Books"}},
	{"Smart TV", "2190.00", "2-big", []string{"Electronics"}},
	{"Macbook Pro", "1250.00", "3-big", []string{"Computers"}},
	{"PC Gamer", "1200.00", "4-big", []string{"Computers"}},
	{"Rails for Dummies", "100.99", "5-big", []string{"Books"}},
	{"PC Gamer Ex", "1350.00", "6-big", []string{"Computers"}},
	{"PC Gamer X", "1350.00", "7-big", []string{"Computers"}},
	{"PC Gamer Alfa", "1850.00", "8-big", []string{"Computers"}},
	{"PC Gamer Tera", "1950.00", "9-big", []string{"Computers"}},
	{"PC Gamer Y", "1700.00", "10-big", []string{"Computers"}},
	{"PC Gamer Nitro", "1450.00", "11-big", []string{"Computers"}},
	{"PC Gamer Card", "1850.00", "12-big", []string{"Computers"}},
	{"PC Gamer Plus", "1350.00", "13-big", []string{"Computers"}},
	{"PC Gamer Hera", "2250.00", "14-big", []string{"Computers"}},
	{"PC Gamer Weed", "2200.00", "15-big", []string{"Computers"}},
	{"PC Gamer Max", "2340.00", "16-big", []string{"Computers"}},
	{"PC Gamer Turbo", "1280.00", "17-big", []string{"Computers"}},
	{"PC Gamer Hot", "1450.00", "18-big", []string{"Computers"}},
	{"PC Gamer Ez", "1750.00", "19-big", []string{"Computers"}},
	{"PC Gamer Tr", "1650.00", "20-big", []string{"Computers"}},
	{"PC Gamer Tx", "1680.00", "21-big", []string{"Computers"}},
	{"PC Gamer Er", "1850.00", "22-big", []string{"Computers"}},
	{"PC Gamer Min", "2250.00", "23-big", []string{"Computers"}},
	{"PC Gamer Boo", "2350.00", "24-big", []string{"Computers"}},
	{"PC Gamer Foo", "4170.00", "25-big", []string{"Computers"}},
}

type userFixture struct {
	firstName string
	lastName  string
	email     string
	roles     []string
}

var userFixtures = []userFixture{
	{"Alex", "Brown", "alex@gmail.com", []string{"ROLE_OPERATOR"}},
	{"Maria", "Green", "maria@gmail.com", []string{"ROLE_OPERATOR", "ROLE_ADMIN"}},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Role{},
		&model.User{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	categoryRepo := repository.NewCategoryRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	roleRepo := repository.NewRoleRepository(gormDB)

	roles, err := seedRoles(ctx, roleRepo)
	if err != nil {
		log.Fatalf("Failed to seed roles: %v", err)
	}

	categories, err := seedCategories(ctx, categoryRepo)
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	if err := seedProducts(ctx, productRepo, categories); err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}

	if err := seedUsers(ctx, userRepo, roles); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Println("Seed completed successfully!")
}

func seedRoles(ctx context.Context, repo repository.RoleRepository) (map[string]model.Role, error) {
	out := make(map[string]model.Role, len(roleFixtures))
	for _, authority := range roleFixtures {
		existing, err := repo.FindByAuthority(ctx, authority)
		if err == nil {
			out[authority] = *existing
			continue
		}
		if err != errors.ErrResourceNotFound {
			return nil, err
		}
		role := model.Role{Authority: authority}
		if err := repo.Create(ctx, &role); err != nil {
			return nil, err
		}
		out[authority] = role
		log.Printf("Created role %s", authority)
	}
	return out, nil
}

func seedCategories(ctx context.Context, repo repository.CategoryRepository) (map[string]model.Category, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.Category, len(categoryFixtures))
	for i := range existing {
		out[existing[i].Name] = existing[i]
	}
	for _, name := range categoryFixtures {
		if _, ok := out[name]; ok {
			continue
		}
		category := model.Category{Name: name}
		if err := repo.Create(ctx, &category); err != nil {
			return nil, err
		}
		out[name] = category
		log.Printf("Created category %s", name)
	}
	return out, nil
}

func seedProducts(ctx context.Context, repo repository.ProductRepository, categories map[string]model.Category) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("Products already present (%d), skipping", len(existing))
		return nil
	}

	for _, fixture := range productFixtures {
		price, err := decimal.NewFromString(fixture.price)
		if err != nil {
			return err
		}
		product := model.Product{
			Name:        fixture.name,
			Description: "Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
			Price:       price,
			ImgURL:      "https://img.example.com/products/" + fixture.imgSlug + ".jpg",
		}
		if err := repo.Create(ctx, &product); err != nil {
			return err
		}

		assigned := make([]model.Category, 0, len(fixture.categories))
		for _, name := range fixture.categories {
			assigned = append(assigned, categories[name])
		}
		if err := repo.ReplaceCategories(ctx, &product, assigned); err != nil {
			return err
		}
	}
	log.Printf("Created %d products", len(productFixtures))
	return nil
}

func seedUsers(ctx context.Context, repo repository.UserRepository, roles map[string]model.Role) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), 10)
	if err != nil {
		return err
	}

	for _, fixture := range userFixtures {
		if _, err := repo.FindByEmail(ctx, fixture.email); err == nil {
			continue
		} else if err != errors.ErrResourceNotFound {
			return err
		}

		user := model.User{
			FirstName: fixture.firstName,
			LastName:  fixture.lastName,
			Email:     fixture.email,
			Password:  string(hashed),
		}
		if err := repo.Create(ctx, &user); err != nil {
			return err
		}

		granted := make([]model.Role, 0, len(fixture.roles))
		for _, authority := range fixture.roles {
			granted = append(granted, roles[authority])
		}
		if err := repo.ReplaceRoles(ctx, &user, granted); err != nil {
			return err
		}
		log.Printf("Created user %s", fixture.email)
	}
	return nil
}
