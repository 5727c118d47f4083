package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/ruralpay/atm/internal/config"
	"github.com/ruralpay/atm/internal/models"
	"github.com/ruralpay/atm/internal/services"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	verbose := flag.Bool("v", false, "verbose diagnostic logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	bank := services.NewBankService(cfg)
	atm := services.NewATMService(bank, cfg.MaxPINAttempts, logger)

	color.Cyan("Welcome to %s", bank.Name())
	in := bufio.NewScanner(os.Stdin)
	for {
		id, ok := prompt(in, "\nInsert card (account id, or q to quit): ")
		if !ok || id == "q" {
			return
		}
		if err := atm.InsertCard(id); err != nil {
			printErr(err)
			continue
		}
		if !enterPIN(in, atm) {
			continue
		}
		session(in, atm)
	}
}

// enterPIN prompts until the PIN is accepted, the card gets locked, or input
// runs out. The card is ejected on every failure path.
func enterPIN(in *bufio.Scanner, atm *services.ATMService) bool {
	for {
		pin, ok := readPIN(in)
		if !ok {
			atm.EjectCard()
			return false
		}
		err := atm.EnterPIN(pin)
		if err == nil {
			color.Green("PIN accepted.")
			return true
		}
		var mismatch *services.PINMismatchError
		switch {
		case errors.As(err, &mismatch):
			color.Yellow("Incorrect PIN. %d attempts remaining.", mismatch.Remaining)
		case errors.Is(err, services.ErrPINLockout):
			color.Red("Card locked after too many failed attempts.")
			atm.EjectCard()
			return false
		default:
			printErr(err)
			atm.EjectCard()
			return false
		}
	}
}

func session(in *bufio.Scanner, atm *services.ATMService) {
	for {
		fmt.Println("\n1) Balance  2) Deposit  3) Withdraw  4) Eject card")
		choice, ok := prompt(in, "> ")
		if !ok {
			atm.EjectCard()
			return
		}
		switch choice {
		case "1":
			balance, err := atm.Balance()
			if err != nil {
				printErr(err)
				continue
			}
			color.Green("Balance: %s", models.FormatAmount(balance))
		case "2":
			amount, ok := readAmount(in, "Amount to deposit: ")
			if !ok {
				continue
			}
			if err := atm.Deposit(amount); err != nil {
				printErr(err)
				continue
			}
			color.Green("Deposited %s.", models.FormatAmount(amount))
		case "3":
			amount, ok := readAmount(in, "Amount to withdraw: ")
			if !ok {
				continue
			}
			if err := atm.Withdraw(amount); err != nil {
				printErr(err)
				continue
			}
			color.Green("Dispensed %s.", models.FormatAmount(amount))
		case "4":
			atm.EjectCard()
			color.Cyan("Card ejected. Goodbye.")
			return
		default:
			fmt.Println("Unknown option.")
		}
	}
}

// readPIN masks the PIN when stdin is a terminal, and falls back to a plain
// line read when it is not (tests, piped input).
func readPIN(in *bufio.Scanner) (string, bool) {
	fmt.Print("Enter PIN: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", false
		}
		return strings.TrimSpace(string(b)), true
	}
	return scanLine(in)
}

func readAmount(in *bufio.Scanner, promptText string) (int64, bool) {
	raw, ok := prompt(in, promptText)
	if !ok {
		return 0, false
	}
	amount, err := models.ParseAmount(raw)
	if err != nil {
		color.Yellow("Invalid amount: %v", err)
		return 0, false
	}
	return amount, true
}

func prompt(in *bufio.Scanner, text string) (string, bool) {
	fmt.Print(text)
	return scanLine(in)
}

func scanLine(in *bufio.Scanner) (string, bool) {
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}

func printErr(err error) {
	switch {
	case errors.Is(err, services.ErrCardLocked):
		color.Red("This card is locked. Contact your bank.")
	case errors.Is(err, services.ErrCardUnknown):
		color.Red("Card not recognized.")
	case errors.Is(err, services.ErrInsufficientFunds):
		color.Red("Insufficient balance.")
	case errors.Is(err, services.ErrInvalidAmount):
		color.Yellow("Amount must be greater than zero.")
	default:
		color.Red("%v", err)
	}
}
