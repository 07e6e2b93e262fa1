package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/contactbook/internal/client"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage contacts",
}

var (
	searchName  string
	searchEmail string
	searchPhone string
	searchPage  int
	searchSize  int
)

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "Search contacts",
	Long: `List searches your contacts. Filters are optional substrings; the
name filter matches either the first or the last name.

Example:
  contactctl contact list --name es --page 2 --size 5`,
	Args: cobra.NoArgs,
	RunE: runContactList,
}

var contactGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one contact with its addresses",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactGet,
}

var (
	addLastName string
	addEmail    string
	addPhone    string
)

var contactAddCmd = &cobra.Command{
	Use:   "add <first-name>",
	Short: "Create a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactAdd,
}

var contactDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a contact and its addresses",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactDelete,
}

func init() {
	contactListCmd.Flags().StringVar(&searchName, "name", "", "filter by first or last name")
	contactListCmd.Flags().StringVar(&searchEmail, "email", "", "filter by email")
	contactListCmd.Flags().StringVar(&searchPhone, "phone", "", "filter by phone")
	contactListCmd.Flags().IntVar(&searchPage, "page", 0, "page number (1-based)")
	contactListCmd.Flags().IntVar(&searchSize, "size", 0, "page size")

	contactAddCmd.Flags().StringVar(&addLastName, "last-name", "", "last name")
	contactAddCmd.Flags().StringVar(&addEmail, "email", "", "email")
	contactAddCmd.Flags().StringVar(&addPhone, "phone", "", "phone")

	contactCmd.AddCommand(contactListCmd)
	contactCmd.AddCommand(contactGetCmd)
	contactCmd.AddCommand(contactAddCmd)
	contactCmd.AddCommand(contactDeleteCmd)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid contact id %q", s)
	}
	return id, nil
}

func runContactList(cmd *cobra.Command, args []string) error {
	items, paging, err := api().SearchContacts(cmd.Context(), client.SearchQuery{
		Name:  searchName,
		Email: searchEmail,
		Phone: searchPhone,
		Page:  searchPage,
		Size:  searchSize,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(map[string]any{"contacts": items, "paging": paging})
	}

	for _, c := range items {
		fmt.Printf("%d\t%s", c.ID, c.FirstName)
		if c.LastName != nil {
			fmt.Printf(" %s", *c.LastName)
		}
		if c.Email != nil {
			fmt.Printf("\t<%s>", *c.Email)
		}
		fmt.Println()
	}
	fmt.Printf("page %d/%d (size %d)\n", paging.CurrentPage, paging.TotalPage, paging.Size)
	return nil
}

func runContactGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	contact, err := api().GetContact(cmd.Context(), id)
	if err != nil {
		return err
	}

	addresses, err := api().ListAddresses(cmd.Context(), id)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(map[string]any{"contact": contact, "addresses": addresses})
	}

	fmt.Printf("ID:         %d\n", contact.ID)
	fmt.Printf("First name: %s\n", contact.FirstName)
	if contact.LastName != nil {
		fmt.Printf("Last name:  %s\n", *contact.LastName)
	}
	if contact.Email != nil {
		fmt.Printf("Email:      %s\n", *contact.Email)
	}
	if contact.Phone != nil {
		fmt.Printf("Phone:      %s\n", *contact.Phone)
	}
	if len(addresses) > 0 {
		fmt.Println("Addresses:")
		for _, a := range addresses {
			fmt.Printf("  [%d]", a.ID)
			for _, part := range []*string{a.Street, a.City, a.Province, a.Country, a.PostalCode} {
				if part != nil {
					fmt.Printf(" %s", *part)
				}
			}
			fmt.Println()
		}
	}
	return nil
}

func runContactAdd(cmd *cobra.Command, args []string) error {
	contact := &client.Contact{FirstName: args[0]}
	if addLastName != "" {
		contact.LastName = &addLastName
	}
	if addEmail != "" {
		contact.Email = &addEmail
	}
	if addPhone != "" {
		contact.Phone = &addPhone
	}

	created, err := api().CreateContact(cmd.Context(), contact)
	if err != nil {
		return err
	}

	fmt.Printf("Created contact %d\n", created.ID)
	return nil
}

func runContactDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := api().DeleteContact(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Printf("Deleted contact %d\n", id)
	return nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
