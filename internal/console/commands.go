package console

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pixil98/go-progression/internal/content"
	"github.com/pixil98/go-progression/internal/display"
)

type command struct {
	name        string
	usage       string
	description string
	minArgs     int
	// confirm is asked before running, if set.
	confirm string

	// local commands never touch the store and skip the driver.
	local func(c *Console) (string, error)
	run   func(c *Console, ctx context.Context, args []string) (string, error)
}

func builtinCommands() []*command {
	return []*command{
		{name: "help", usage: "help", description: "List commands.", local: (*Console).help},
		{name: "items", usage: "items", description: "Show the global inventory.", run: (*Console).items},
		{name: "give", usage: "give <item> <amount>", description: "Add items to the inventory.", minArgs: 2, run: (*Console).give},
		{name: "take", usage: "take <item> <amount>", description: "Remove items from the inventory.", minArgs: 2, run: (*Console).take},
		{name: "unlocked", usage: "unlocked <type>", description: "List unlocked content of a type.", minArgs: 1, run: (*Console).unlocked},
		{name: "unlock", usage: "unlock <type> <name>", description: "Unlock content.", minArgs: 2, run: (*Console).unlock},
		{name: "stats", usage: "stats", description: "Show items delivered this session.", run: (*Console).statistics},
		{name: "zones", usage: "zones", description: "Show zone wave records.", run: (*Console).zones},
		{name: "wave", usage: "wave <zone> <wave>", description: "Record a wave reached in a zone.", minArgs: 2, run: (*Console).wave},
		{name: "launch", usage: "launch <zone>", description: "Pay a zone's launch cost.", minArgs: 1, run: (*Console).launch},
		{name: "save", usage: "save", description: "Save progression now.", run: (*Console).save},
		{name: "reset", usage: "reset", description: "Save progression immediately.", confirm: "Save all progression now? ", run: (*Console).reset},
		{name: "quit", usage: "quit", description: "Close the console.", local: func(*Console) (string, error) { return "", errQuit }},
	}
}

func (c *Console) help() (string, error) {
	cmds := make([]*command, 0, len(c.commands))
	for _, cmd := range c.commands {
		cmds = append(cmds, cmd)
	}
	slices.SortFunc(cmds, func(a, b *command) int { return strings.Compare(a.name, b.name) })

	type row struct{ Usage, Description string }
	rows := make([]row, 0, len(cmds))
	for _, cmd := range cmds {
		rows = append(rows, row{Usage: cmd.usage, Description: cmd.description})
	}
	return ExpandTemplate(helpTemplate, rows)
}

func (c *Console) items(_ context.Context, _ []string) (string, error) {
	type row struct {
		Name     string
		Count    int
		Unlocked bool
	}
	var rows []row
	for _, item := range c.catalog.ItemList() {
		rows = append(rows, row{Name: item.Name(), Count: c.store.GetItem(item), Unlocked: c.store.IsUnlocked(item)})
	}
	return ExpandTemplate(itemsTemplate, rows)
}

func (c *Console) give(_ context.Context, args []string) (string, error) {
	item, amount, err := c.parseStack(args)
	if err != nil {
		return "", err
	}

	c.store.AddItem(item, amount)
	return fmt.Sprintf("Added %d %s, now %d.", amount, item.Name(), c.store.GetItem(item)), nil
}

func (c *Console) take(_ context.Context, args []string) (string, error) {
	item, amount, err := c.parseStack(args)
	if err != nil {
		return "", err
	}

	stacks := []content.ItemStack{{Item: item, Amount: amount}}
	if !c.store.HasItems(stacks) {
		return "", NewUserError(fmt.Sprintf("Not enough %s: have %d, need %d.", item.Name(), c.store.GetItem(item), amount))
	}

	c.store.RemoveItems(stacks)
	return fmt.Sprintf("Removed %d %s, now %d.", amount, item.Name(), c.store.GetItem(item)), nil
}

func (c *Console) unlocked(_ context.Context, args []string) (string, error) {
	t, err := parseType(args[0])
	if err != nil {
		return "", err
	}

	return ExpandTemplate(unlockedTemplate, struct {
		Type  string
		Names []string
	}{Type: t.String(), Names: c.store.Unlocked(t)})
}

func (c *Console) unlock(_ context.Context, args []string) (string, error) {
	t, err := parseType(args[0])
	if err != nil {
		return "", err
	}

	u, ok := c.catalog.Find(t, args[1])
	if !ok {
		return "", NewUserError(fmt.Sprintf("There is no %s named %q.", t, args[1]))
	}
	if c.store.IsUnlocked(u) {
		return fmt.Sprintf("%s %s is already unlocked.", display.Capitalize(t.String()), u.Name()), nil
	}

	c.store.UnlockContent(u)
	return fmt.Sprintf("Unlocked %s %s.", t, u.Name()), nil
}

// statistics lists every item delivered this session, in catalog order.
func (c *Console) statistics(_ context.Context, _ []string) (string, error) {
	type row struct {
		Name      string
		Delivered int
	}
	var rows []row
	for _, item := range c.catalog.ItemList() {
		if n := c.stats.Delivered(item.Name()); n != 0 {
			rows = append(rows, row{Name: item.Name(), Delivered: n})
		}
	}

	return ExpandTemplate(statsTemplate, struct {
		Items []row
		Total int
	}{Items: rows, Total: c.stats.TotalDelivered()})
}

type zoneRow struct {
	Name      string
	Best      int
	Condition int
	Completed bool
	Unlocked  bool
}

func (c *Console) zoneRow(z *content.Zone) zoneRow {
	return zoneRow{
		Name:      z.Name(),
		Best:      c.store.GetWaveScore(z),
		Condition: z.ConditionWave,
		Completed: c.store.IsCompleted(z),
		Unlocked:  c.store.IsUnlocked(z),
	}
}

func (c *Console) zones(_ context.Context, _ []string) (string, error) {
	var rows []zoneRow
	for _, z := range c.catalog.ZoneList() {
		rows = append(rows, c.zoneRow(z))
	}
	return ExpandTemplate(zonesTemplate, rows)
}

func (c *Console) wave(_ context.Context, args []string) (string, error) {
	zone, err := c.findZone(args[0])
	if err != nil {
		return "", err
	}
	wave, err := parseAmount(args[1])
	if err != nil {
		return "", err
	}

	c.store.UpdateWaveScore(zone, wave)
	return ExpandTemplate(waveTemplate, c.zoneRow(zone))
}

// launch spends a zone's launch cost. The zone must be unlocked.
func (c *Console) launch(_ context.Context, args []string) (string, error) {
	zone, err := c.findZone(args[0])
	if err != nil {
		return "", err
	}
	if !c.store.IsUnlocked(zone) {
		return "", NewUserError(fmt.Sprintf("Zone %s is locked.", zone.Name()))
	}

	cost := zone.Cost()
	if !c.store.HasItems(cost) {
		var missing []string
		for _, s := range cost {
			if have := c.store.GetItem(s.Item); have < s.Amount {
				missing = append(missing, fmt.Sprintf("%d %s", s.Amount-have, s.Item.Name()))
			}
		}
		return "", NewUserError(fmt.Sprintf("Cannot launch to %s, missing %s.", zone.Name(), strings.Join(missing, ", ")))
	}

	c.store.RemoveItems(cost)

	spent := make([]string, 0, len(cost))
	for _, s := range cost {
		spent = append(spent, fmt.Sprintf("%d %s", s.Amount, s.Item.Name()))
	}
	if len(spent) == 0 {
		spent = append(spent, "nothing")
	}
	return ExpandTemplate(launchTemplate, struct {
		Name  string
		Spent []string
	}{Name: zone.Name(), Spent: spent})
}

func (c *Console) save(_ context.Context, _ []string) (string, error) {
	if err := c.store.Save(); err != nil {
		return "", err
	}
	return "Progression saved.", nil
}

func (c *Console) reset(_ context.Context, _ []string) (string, error) {
	if err := c.store.Reset(); err != nil {
		return "", err
	}
	return "Progression saved.", nil
}

func (c *Console) parseStack(args []string) (*content.Item, int, error) {
	item := c.catalog.Item(args[0])
	if item == nil {
		return nil, 0, NewUserError(fmt.Sprintf("There is no item named %q.", args[0]))
	}
	amount, err := parseAmount(args[1])
	if err != nil {
		return nil, 0, err
	}
	return item, amount, nil
}

func (c *Console) findZone(name string) (*content.Zone, error) {
	zone := c.catalog.Zone(name)
	if zone == nil {
		return nil, NewUserError(fmt.Sprintf("There is no zone named %q.", name))
	}
	return zone, nil
}

func parseAmount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, NewUserError(fmt.Sprintf("%q is not a positive number.", s))
	}
	return n, nil
}

func parseType(s string) (content.Type, error) {
	t, err := content.ParseType(strings.ToLower(s))
	if err != nil {
		names := make([]string, 0, len(content.Types()))
		for _, t := range content.Types() {
			names = append(names, t.String())
		}
		return t, NewUserError(fmt.Sprintf("Unknown content type %q, expected one of %s.", s, strings.Join(names, ", ")))
	}
	return t, nil
}
