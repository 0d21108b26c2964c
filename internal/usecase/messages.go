package usecase

import (
	"fmt"

	"github.com/radkal2/bonusbank/internal/domain"
)

// SMS message templates. Amounts are in toman.

func welcomeMessage(user *domain.User) string {
	return fmt.Sprintf("Welcome to the Bonus Bank dear %s!", user.FullName())
}

func accountOpenedMessage(user *domain.User, number string) string {
	return fmt.Sprintf("Dear %s, your account number is:\n%s", user.FullName(), number)
}

func withdrawMessage(user *domain.User, amount int64, number string) string {
	return fmt.Sprintf("Dear %s, %d toman withdrawn from account number: %s",
		user.FullName(), amount, number)
}

func depositCashMessage(user *domain.User, amount int64, number string) string {
	return fmt.Sprintf("Dear %s, %d toman deposited to account number: %s",
		user.FullName(), amount, number)
}

func transferMessage(user *domain.User, amount int64, srcNumber, destNumber string) string {
	return fmt.Sprintf("Dear %s, %d toman transferred from account number %s to account number %s",
		user.FullName(), amount, srcNumber, destNumber)
}

func transferSourceMessage(user *domain.User, amount int64, number string) string {
	return fmt.Sprintf("Dear %s, %d toman withdrawn from account number %s",
		user.FullName(), amount, number)
}

func loanGrantedMessage(user *domain.User, amount int64, term domain.RepaymentTerm) string {
	return fmt.Sprintf("Dear %s, you got a bank loan amount: %d toman with a %d-month repayment term.",
		user.FullName(), amount, int(term))
}

func installmentShortfallMessage(user *domain.User, amount int64) string {
	return fmt.Sprintf("Dear %s, your account has no enough credit to pay for installment %d toman.",
		user.FullName(), amount)
}
