package main

import (
	"github.com/labstack/gommon/log"
	"uk.co.dudmesh.ledger/internal/boot"
	"uk.co.dudmesh.ledger/internal/model"
	"uk.co.dudmesh.ledger/internal/service/account"
	"uk.co.dudmesh.ledger/internal/store"
)

type Directory interface {
	Register(login, password, confirmPassword string) model.Result
	Authenticate(login, password string) model.Result
	Verify(login, password, phone string, age int, cardNumber, geo string) model.Result
	ResetPassword(phone, newPassword string) model.Result
	ChangePassword(login, oldPassword, newPassword string) model.Result
	AddToken(uid model.UserID, token string, initialBalance float64) model.Result
	Transfer(senderUID, receiverUID model.UserID, amount float64, token string) model.Result
	TransferWithHistory(receiverUID, senderUID model.UserID, amount float64, token string) model.Result
	Lookup(login string) (*model.User, error)
}

func main() {
	config, err := boot.Load()
	if err != nil {
		log.Fatalf("boot: %+v", err)
	}

	logger, err := boot.NewLogger("ledger", config)
	if err != nil {
		log.Fatalf("creating logger: %+v", err)
	}

	st, err := store.Open(config)
	if err != nil {
		log.Fatalf("opening store: %+v", err)
	}
	defer st.Close()

	directory := account.New(config, st, logger)
	if err := run(directory, logger); err != nil {
		log.Fatalf("demo: %+v", err)
	}
}

func run(directory Directory, logger *log.Logger) error {
	report := func(op string, result model.Result) {
		logger.Infoj(log.JSON{
			"op":      op,
			"status":  result.Status,
			"text":    result.Text,
			"message": result.Message,
		})
	}

	report("register user1", directory.Register("user1", "password123", "password123"))
	report("register user1 again", directory.Register("user1", "password123", "password123"))
	report("authenticate user1", directory.Authenticate("user1", "password123"))
	report("change password user1", directory.ChangePassword("user1", "password123", "newpassword"))
	report("verify user1", directory.Verify("user1", "newpassword", "+15550100", 30, "4111111111111111", "NL"))
	report("reset password user1", directory.ResetPassword("+15550100", "password123"))
	report("register user2", directory.Register("user2", "password456", "password456"))

	sender, err := directory.Lookup("user1")
	if err != nil {
		return err
	}
	receiver, err := directory.Lookup("user2")
	if err != nil {
		return err
	}

	report("add ETH to user1", directory.AddToken(sender.ID, "ETH", 10))
	report("add ETH to user1 again", directory.AddToken(sender.ID, "ETH", 5))
	report("add BTC to user1", directory.AddToken(sender.ID, "BTC", 20))
	report("trigger transfer", directory.Transfer(sender.ID, receiver.ID, 5, "BTC"))
	report("receive transfer", directory.TransferWithHistory(receiver.ID, sender.ID, 5, "BTC"))
	report("unknown uid", directory.AddToken("uid123", "ETH", 10))

	for _, login := range []string{"user1", "user2"} {
		user, err := directory.Lookup(login)
		if err != nil {
			return err
		}
		logger.Infoj(log.JSON{
			"login":              user.Login,
			"uid":                user.ID,
			"online":             user.Online,
			"verified":           user.Verified,
			"balance":            user.Balance,
			"transactionHistory": user.TransactionHistory,
		})
	}
	return nil
}
