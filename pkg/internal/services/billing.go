package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/database"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/stripe/stripe-go/v79"
	portalsession "github.com/stripe/stripe-go/v79/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/customer"
	"github.com/stripe/stripe-go/v79/subscription"
	"gorm.io/gorm"
)

func SetupStripe() {
	stripe.Key = viper.GetString("billing.secret_key")
}

type SubscriptionStatus struct {
	Status            string     `json:"status"`
	PlanID            string     `json:"plan_id,omitempty"`
	PeriodEnd         *time.Time `json:"period_end,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancel_at_period_end"`
}

func GetBillingAccount(user models.Account) (models.BillingAccount, error) {
	var account models.BillingAccount
	if err := database.C.Where(models.BillingAccount{
		AccountEmail: user.Email,
	}).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

// EnsureBillingAccount returns the user's customer mapping, creating the
// customer at the payments provider on first use.
func EnsureBillingAccount(user models.Account) (models.BillingAccount, error) {
	account, err := GetBillingAccount(user)
	if err == nil {
		return account, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return account, err
	}

	result, err := customer.New(&stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Name:  stripe.String(user.Name),
	})
	if err != nil {
		return account, fmt.Errorf("remote payments error: %v", err)
	}

	account = models.BillingAccount{
		AccountEmail: user.Email,
		CustomerID:   result.ID,
	}
	if err := database.C.Save(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func GetSubscriptionStatus(user models.Account) (SubscriptionStatus, error) {
	status := SubscriptionStatus{Status: "none"}

	account, err := GetBillingAccount(user)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return status, nil
	} else if err != nil {
		return status, err
	}

	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(account.CustomerID),
	}
	params.Limit = stripe.Int64(1)

	iter := subscription.List(params)
	for iter.Next() {
		sub := iter.Subscription()
		status.Status = string(sub.Status)
		status.CancelAtPeriodEnd = sub.CancelAtPeriodEnd
		if sub.CurrentPeriodEnd > 0 {
			status.PeriodEnd = lo.ToPtr(time.Unix(sub.CurrentPeriodEnd, 0))
		}
		if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
			status.PlanID = sub.Items.Data[0].Price.ID
		}
	}
	if err := iter.Err(); err != nil {
		return status, fmt.Errorf("remote payments error: %v", err)
	}

	return status, nil
}

func NewCheckoutSession(user models.Account, priceID string) (string, error) {
	account, err := EnsureBillingAccount(user)
	if err != nil {
		return "", err
	}

	result, err := checkoutsession.New(&stripe.CheckoutSessionParams{
		Customer: stripe.String(account.CustomerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(viper.GetString("billing.success_url")),
		CancelURL:  stripe.String(viper.GetString("billing.cancel_url")),
	})
	if err != nil {
		return "", fmt.Errorf("remote payments error: %v", err)
	}
	return result.URL, nil
}

func NewPortalSession(user models.Account) (string, error) {
	account, err := EnsureBillingAccount(user)
	if err != nil {
		return "", err
	}

	result, err := portalsession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(account.CustomerID),
		ReturnURL: stripe.String(viper.GetString("billing.return_url")),
	})
	if err != nil {
		return "", fmt.Errorf("remote payments error: %v", err)
	}
	return result.URL, nil
}
