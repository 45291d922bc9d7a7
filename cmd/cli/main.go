package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/wadjakorntonsri/linkvault/pkg/adapters/handler"
	"github.com/wadjakorntonsri/linkvault/pkg/adapters/repository/sqldb"
	"github.com/wadjakorntonsri/linkvault/pkg/config"
	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
	"github.com/wadjakorntonsri/linkvault/pkg/core/services"
	"github.com/wadjakorntonsri/linkvault/pkg/logging"
)

const usage = "expected 'export', 'import', 'upgrade', 'downgrade' or 'token' subcommands"

// Snapshot is the export file format.
type Snapshot struct {
	Accounts []domain.Account `json:"accounts"`
	Links    []domain.Link    `json:"links"`
}

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "", "JSON file to import")
	upgradeCmd := flag.NewFlagSet("upgrade", flag.ExitOnError)
	upgradeWho := upgradeCmd.String("account", "", "email or handle")
	downgradeCmd := flag.NewFlagSet("downgrade", flag.ExitOnError)
	downgradeWho := downgradeCmd.String("account", "", "email or handle")
	tokenCmd := flag.NewFlagSet("token", flag.ExitOnError)
	tokenWho := tokenCmd.String("account", "", "email or handle")
	tokenTTL := tokenCmd.Duration("ttl", 24*time.Hour, "token lifetime")

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat).WithEntryName("cli")

	repo, err := sqldb.NewRepository(cfg.DatabaseURL)
	if err != nil {
		log.WithErr(err).Fatal("failed to connect to db")
	}
	defer repo.Close()

	ctx := context.Background()
	profiles := services.NewProfileService(repo, log)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		err = doExport(ctx, repo)
	case "import":
		importCmd.Parse(os.Args[2:])
		if *importFile == "" {
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		err = doImport(ctx, repo, log, *importFile)
	case "upgrade":
		upgradeCmd.Parse(os.Args[2:])
		err = setEntitlement(ctx, repo, profiles, log, *upgradeWho, true)
	case "downgrade":
		downgradeCmd.Parse(os.Args[2:])
		err = setEntitlement(ctx, repo, profiles, log, *downgradeWho, false)
	case "token":
		tokenCmd.Parse(os.Args[2:])
		err = issueToken(ctx, repo, cfg, *tokenWho, *tokenTTL)
	default:
		fmt.Println(usage)
		os.Exit(1)
	}
	if err != nil {
		log.WithErr(err).Fatal(os.Args[1] + " failed")
	}
}

func doExport(ctx context.Context, repo *sqldb.Repository) error {
	accounts, err := repo.DumpAccounts(ctx)
	if err != nil {
		return err
	}
	links, err := repo.DumpLinks(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Snapshot{Accounts: accounts, Links: links})
}

// doImport inserts records whose ids are not present yet. Click history is not part of the snapshot.
func doImport(ctx context.Context, repo *sqldb.Repository, log *logging.Log, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	var snap Snapshot
	if err := json.NewDecoder(file).Decode(&snap); err != nil {
		return fmt.Errorf("decode %s: %w", filename, err)
	}

	var accounts, links int
	for i := range snap.Accounts {
		a := &snap.Accounts[i]
		existing, err := repo.GetAccount(ctx, a.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			log.WithField("account_id", a.ID).Info("skipping existing account")
			continue
		}
		if err := repo.CreateAccount(ctx, a); err != nil {
			log.WithErr(err).WithField("account_id", a.ID).Warn("failed to import account")
			continue
		}
		accounts++
	}

	for i := range snap.Links {
		l := &snap.Links[i]
		existing, err := repo.GetLink(ctx, l.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			log.WithField("link_id", l.ID).Info("skipping existing link")
			continue
		}
		if err := repo.CreateLink(ctx, l); err != nil {
			log.WithErr(err).WithField("link_id", l.ID).Warn("failed to import link")
			continue
		}
		links++
	}

	log.WithField("accounts", accounts).WithField("links", links).Info("import finished")
	return nil
}

func findAccount(ctx context.Context, repo *sqldb.Repository, who string) (*domain.Account, error) {
	who = strings.TrimSpace(who)
	if who == "" {
		return nil, fmt.Errorf("%w: -account is required", domain.ErrValidation)
	}

	var (
		account *domain.Account
		err     error
	)
	if strings.Contains(who, "@") {
		account, err = repo.GetAccountByEmail(ctx, strings.ToLower(who))
	} else {
		account, err = repo.GetAccountByHandle(ctx, domain.NormalizeHandle(who))
	}
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %q", domain.ErrNotFound, who)
	}
	return account, nil
}

func setEntitlement(ctx context.Context, repo *sqldb.Repository, profiles *services.ProfileService, log *logging.Log, who string, pro bool) error {
	account, err := findAccount(ctx, repo, who)
	if err != nil {
		return err
	}
	account, err = profiles.SetEntitlement(ctx, account.ID, pro)
	if err != nil {
		return err
	}
	log.WithField("account_id", account.ID).WithField("is_pro", account.IsPro).WithField("theme", account.Theme).Info("entitlement updated")
	return nil
}

// issueToken prints a bearer token, handy for scripting against the API.
func issueToken(ctx context.Context, repo *sqldb.Repository, cfg *config.Config, who string, ttl time.Duration) error {
	account, err := findAccount(ctx, repo, who)
	if err != nil {
		return err
	}
	token, _, err := handler.IssueToken([]byte(cfg.JWTSecret), account.ID, ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
