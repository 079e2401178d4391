package services

import (
	"fmt"
	"time"

	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/database"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const inviteLifespan = 7 * 24 * time.Hour

func ListOrganizations(user models.Account) ([]models.Organization, error) {
	var memberships []models.OrganizationMember
	if err := database.C.Where(models.OrganizationMember{
		Email: user.Email,
	}).Find(&memberships).Error; err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return []models.Organization{}, nil
	}

	ids := lo.Map(memberships, func(item models.OrganizationMember, idx int) uint {
		return item.OrganizationID
	})

	var organizations []models.Organization
	if err := database.C.
		Where("id IN ?", ids).
		Order("created_at ASC").
		Find(&organizations).Error; err != nil {
		return organizations, err
	}
	return organizations, nil
}

func GetOrganization(id uint) (models.Organization, error) {
	var organization models.Organization
	if err := database.C.Where(models.Organization{
		BaseModel: models.BaseModel{ID: id},
	}).Preload("Members").First(&organization).Error; err != nil {
		return organization, err
	}
	return organization, nil
}

func GetOrganizationMembership(user models.Account, organizationID uint) (models.OrganizationMember, error) {
	var membership models.OrganizationMember
	if err := database.C.Where(models.OrganizationMember{
		OrganizationID: organizationID,
		Email:          user.Email,
	}).First(&membership).Error; err != nil {
		return membership, err
	}
	return membership, nil
}

func NewOrganization(user models.Account, organization models.Organization) (models.Organization, error) {
	organization.OwnerEmail = user.Email
	organization.Members = []models.OrganizationMember{
		{Email: user.Email, Name: user.Name, Role: models.OrgRoleOwner},
	}

	err := database.C.Save(&organization).Error
	return organization, err
}

func EditOrganization(organization models.Organization) (models.Organization, error) {
	err := database.C.Save(&organization).Error
	return organization, err
}

func DeleteOrganization(organization models.Organization) error {
	return database.C.Select("Members", "Invites").Delete(&organization).Error
}

func AddOrganizationMember(organization models.Organization, email, name string, role models.OrgRole) (models.OrganizationMember, error) {
	membership := models.OrganizationMember{
		OrganizationID: organization.ID,
		Email:          email,
		Name:           name,
		Role:           role,
	}

	var count int64
	if err := database.C.Model(&models.OrganizationMember{}).Where(models.OrganizationMember{
		OrganizationID: organization.ID,
		Email:          email,
	}).Count(&count).Error; err != nil {
		return membership, err
	} else if count > 0 {
		return membership, fmt.Errorf("account %s is already a member of this organization", email)
	}

	err := database.C.Save(&membership).Error
	return membership, err
}

func RemoveOrganizationMember(organization models.Organization, memberID uint) error {
	var membership models.OrganizationMember
	if err := database.C.Where(models.OrganizationMember{
		BaseModel:      models.BaseModel{ID: memberID},
		OrganizationID: organization.ID,
	}).First(&membership).Error; err != nil {
		return err
	}
	if membership.Role == models.OrgRoleOwner {
		return fmt.Errorf("cannot remove the organization owner")
	}
	return database.C.Delete(&membership).Error
}

func NewOrganizationInvite(organization models.Organization, email string, role models.OrgRole) (models.OrganizationInvite, error) {
	invite := models.OrganizationInvite{
		OrganizationID: organization.ID,
		Email:          email,
		Role:           role,
		Token:          uuid.NewString(),
		ExpiredAt:      time.Now().Add(inviteLifespan),
	}

	err := database.C.Save(&invite).Error
	return invite, err
}

// AcceptOrganizationInvite turns a pending invite into a membership. The
// invite must match the accepting account's email and not be expired.
func AcceptOrganizationInvite(user models.Account, token string) (models.OrganizationMember, error) {
	var membership models.OrganizationMember

	var invite models.OrganizationInvite
	if err := database.C.Where(models.OrganizationInvite{
		Token: token,
	}).Preload("Organization").First(&invite).Error; err != nil {
		return membership, fmt.Errorf("invite not found")
	}
	if invite.Email != user.Email {
		return membership, fmt.Errorf("this invite was issued for another account")
	}
	if invite.ExpiredAt.Before(time.Now()) {
		return membership, fmt.Errorf("this invite has expired")
	}

	membership, err := AddOrganizationMember(invite.Organization, user.Email, user.Name, invite.Role)
	if err != nil {
		return membership, err
	}

	database.C.Delete(&invite)
	return membership, nil
}
