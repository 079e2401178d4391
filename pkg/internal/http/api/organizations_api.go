package api

import (
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/http/exts"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func listOrganization(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	if organizations, err := services.ListOrganizations(user); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(organizations)
	}
}

func getOrganization(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	id, err := c.ParamsInt("organizationId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if _, err := services.GetOrganizationMembership(user, uint(id)); err != nil {
		return fiber.NewError(fiber.StatusForbidden, "you are not a member of this organization")
	}

	if organization, err := services.GetOrganization(uint(id)); err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	} else {
		return c.JSON(organization)
	}
}

func createOrganization(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	var data struct {
		Name        string `json:"name" validate:"required"`
		Slug        string `json:"slug" validate:"required,alphanum,min=4,max=32"`
		Description string `json:"description"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	organization, err := services.NewOrganization(user, models.Organization{
		Name:        data.Name,
		Slug:        data.Slug,
		Description: data.Description,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(organization)
}

func editOrganization(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	id, err := c.ParamsInt("organizationId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var data struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	organization, err := services.GetOrganization(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	} else if organization.OwnerEmail != user.Email {
		return fiber.NewError(fiber.StatusForbidden, "only the organization owner can edit it")
	}

	organization.Name = data.Name
	organization.Description = data.Description

	if organization, err := services.EditOrganization(organization); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(organization)
	}
}

func deleteOrganization(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	id, err := c.ParamsInt("organizationId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	organization, err := services.GetOrganization(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	} else if organization.OwnerEmail != user.Email {
		return fiber.NewError(fiber.StatusForbidden, "only the organization owner can delete it")
	}

	if err := services.DeleteOrganization(organization); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusOK)
}

func listOrganizationMembers(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	id, err := c.ParamsInt("organizationId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if _, err := services.GetOrganizationMembership(user, uint(id)); err != nil {
		return fiber.NewError(fiber.StatusForbidden, "you are not a member of this organization")
	}

	organization, err := services.GetOrganization(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return c.JSON(organization.Members)
}

func addOrganizationMember(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	id, err := c.ParamsInt("organizationId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var data struct {
		Email string `json:"email" validate:"required,email"`
		Name  string `json:"name"`
		Role  string `json:"role" validate:"omitempty,oneof=moderator member"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}
	if len(data.Role) == 0 {
		data.Role = models.OrgRoleMember
	}

	membership, err := services.GetOrganizationMembership(user, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusForbidden, "you are not a member of this organization")
	} else if membership.Role == models.OrgRoleMember {
		return fiber.NewError(fiber.StatusForbidden, "only owners and moderators can add members")
	}

	organization, err := services.GetOrganization(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if member, err := services.AddOrganizationMember(organization, data.Email, data.Name, data.Role); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	} else {
		return c.JSON(member)
	}
}

func removeOrganizationMember(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	id, err := c.ParamsInt("organizationId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	memberID, err := c.ParamsInt("memberId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	membership, err := services.GetOrganizationMembership(user, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusForbidden, "you are not a member of this organization")
	} else if membership.Role == models.OrgRoleMember {
		return fiber.NewError(fiber.StatusForbidden, "only owners and moderators can remove members")
	}

	organization, err := services.GetOrganization(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if err := services.RemoveOrganizationMember(organization, uint(memberID)); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.SendStatus(fiber.StatusOK)
}

func createOrganizationInvite(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	id, err := c.ParamsInt("organizationId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var data struct {
		Email string `json:"email" validate:"required,email"`
		Role  string `json:"role" validate:"omitempty,oneof=moderator member"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}
	if len(data.Role) == 0 {
		data.Role = models.OrgRoleMember
	}

	membership, err := services.GetOrganizationMembership(user, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusForbidden, "you are not a member of this organization")
	} else if membership.Role == models.OrgRoleMember {
		return fiber.NewError(fiber.StatusForbidden, "only owners and moderators can invite")
	}

	organization, err := services.GetOrganization(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if invite, err := services.NewOrganizationInvite(organization, data.Email, data.Role); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	} else {
		return c.JSON(invite)
	}
}

func acceptOrganizationInvite(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	token := c.Params("token")

	if membership, err := services.AcceptOrganizationInvite(user, token); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	} else {
		return c.JSON(membership)
	}
}
