/*
 * Copyright 2026 Marco Confalonieri.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"clouddns-client/internal/clouddns"
	"clouddns-client/internal/server"
	"clouddns-client/internal/zonefile"

	"github.com/caarlos0/env/v8"
	log "github.com/sirupsen/logrus"
)

const usage = `usage: dnsctl [--project=<id>] <command> [args]

commands:
  quotas                                 print the project quota limits
  zones                                  list the managed zones
  create-zone <name> <dns-name> [descr]  create a managed zone
  delete-zone <name>                     delete a managed zone
  rrsets <zone>                          list the record sets of a zone
  changes <zone>                         list the change history of a zone
  apply <zone> <zonefile>                submit a zonefile as one change and wait
  export <zone>                          print the zone as zonefile text
  watch <zone> <change-id>               wait until a change is done
`

// parseProject extracts an explicit --project argument, if present.
func parseProject(args []string) (string, []string) {
	project := ""
	rest := make([]string, 0, len(args))
	for _, a := range args {
		if strings.HasPrefix(a, "--project=") {
			project = strings.TrimPrefix(a, "--project=")
			continue
		}
		rest = append(rest, a)
	}
	return project, rest
}

// startSocket starts the ops socket in the background when enabled and
// marks it healthy and ready.
func startSocket(options server.SocketOptions) *server.Status {
	if !options.Enabled {
		return nil
	}
	status := &server.Status{}
	socket := server.NewMetricsSocket(status)
	startedChan := make(chan struct{})
	log.Infof("Starting ops socket on %s", options.GetMetricsAddress())
	go socket.Start(startedChan, options)
	<-startedChan
	status.SetHealthy(true)
	status.SetReady(true)
	return status
}

// findZone returns the handle of a saved zone, resolving its DNS name.
func findZone(ctx context.Context, client *clouddns.Client, name string) (*clouddns.ManagedZone, error) {
	zones, err := client.AllZones(ctx)
	if err != nil {
		return nil, err
	}
	for _, z := range zones {
		if z.Name() == name {
			return z, nil
		}
	}
	return nil, fmt.Errorf("zone %q not found in project %s", name, client.Project())
}

func runQuotas(ctx context.Context, client *clouddns.Client) error {
	quotas, err := client.Quotas(ctx)
	if err != nil {
		return err
	}
	for name, limit := range quotas {
		fmt.Printf("%s\t%d\n", name, limit)
	}
	return nil
}

func runZones(ctx context.Context, client *clouddns.Client) error {
	zones, err := client.AllZones(ctx)
	if err != nil {
		return err
	}
	for _, z := range zones {
		fmt.Printf("%s\t%s\t%s\n", z.Name(), z.DNSName(), strings.Join(z.NameServers(), ","))
	}
	return nil
}

func runCreateZone(ctx context.Context, client *clouddns.Client, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("create-zone needs a name and a DNS name")
	}
	description := ""
	if len(args) > 2 {
		description = args[2]
	}
	zone := client.Zone(args[0], args[1], description)
	if err := zone.Create(ctx); err != nil {
		return err
	}
	fmt.Printf("%s\t%s\t%s\n", zone.Name(), zone.DNSName(), strings.Join(zone.NameServers(), ","))
	return nil
}

func runDeleteZone(ctx context.Context, client *clouddns.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("delete-zone needs a zone name")
	}
	return client.Zone(args[0], "", "").Delete(ctx)
}

func runRRSets(ctx context.Context, client *clouddns.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("rrsets needs a zone name")
	}
	rrsets, err := client.Zone(args[0], "", "").AllResourceRecordSets(ctx)
	if err != nil {
		return err
	}
	for _, rs := range rrsets {
		fmt.Printf("%s\t%d\t%s\t%s\n", rs.Name, rs.TTL, rs.Type, strings.Join(rs.Rrdatas, " "))
	}
	return nil
}

func runChanges(ctx context.Context, client *clouddns.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("changes needs a zone name")
	}
	zone := client.Zone(args[0], "", "")
	token := ""
	for {
		page, next, err := zone.ListChanges(ctx, token)
		if err != nil {
			return err
		}
		for _, ch := range page {
			fmt.Printf("%s\t%s\t%s\t+%d/-%d\n", ch.ID(), ch.Status(),
				ch.StartTime().Format("2006-01-02T15:04:05Z07:00"),
				len(ch.Additions()), len(ch.Deletions()))
		}
		if next == "" {
			return nil
		}
		token = next
	}
}

func runApply(ctx context.Context, client *clouddns.Client, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("apply needs a zone name and a zonefile")
	}
	file, err := os.Open(args[1])
	if err != nil {
		return err
	}
	defer file.Close()

	zone, err := findZone(ctx, client, args[0])
	if err != nil {
		return err
	}
	additions, err := zonefile.Parse(file, strings.TrimSuffix(zone.DNSName(), "."))
	if err != nil {
		return err
	}

	change := zone.NewChange(additions, nil)
	if err := change.Begin(ctx); err != nil {
		return err
	}
	log.Infof("Change [%s] submitted with status [%s]", change.ID(), change.Status())
	if err := clouddns.WaitUntilDone(ctx, change, clouddns.DefaultWaitOptions()); err != nil {
		return err
	}
	fmt.Printf("%s\t%s\n", change.ID(), change.Status())
	return nil
}

func runExport(ctx context.Context, client *clouddns.Client, defaultTTL int, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("export needs a zone name")
	}
	zone, err := findZone(ctx, client, args[0])
	if err != nil {
		return err
	}
	rrsets, err := zone.AllResourceRecordSets(ctx)
	if err != nil {
		return err
	}
	text, err := zonefile.Export(strings.TrimSuffix(zone.DNSName(), "."), rrsets, defaultTTL)
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}

func runWatch(ctx context.Context, client *clouddns.Client, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("watch needs a zone name and a change id")
	}
	change := client.Zone(args[0], "", "").Change(args[1])
	if err := clouddns.WaitUntilDone(ctx, change, clouddns.DefaultWaitOptions()); err != nil {
		return err
	}
	fmt.Printf("%s\t%s\n", change.ID(), change.Status())
	return nil
}

// main function
func main() {
	explicit, args := parseProject(os.Args[1:])
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	config, err := clouddns.NewConfiguration()
	if err != nil {
		log.Fatal(err)
	}
	socketOptions := server.SocketOptions{}
	if err := env.Parse(&socketOptions); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	project, err := clouddns.ResolveProject(ctx, explicit, config, config.MetadataProbe())
	if err != nil {
		log.Fatal(err)
	}
	client := clouddns.NewClient(config, project)

	command := args[0]
	if command == "apply" || command == "watch" {
		startSocket(socketOptions)
	}

	switch command {
	case "quotas":
		err = runQuotas(ctx, client)
	case "zones":
		err = runZones(ctx, client)
	case "create-zone":
		err = runCreateZone(ctx, client, args[1:])
	case "delete-zone":
		err = runDeleteZone(ctx, client, args[1:])
	case "rrsets":
		err = runRRSets(ctx, client, args[1:])
	case "changes":
		err = runChanges(ctx, client, args[1:])
	case "apply":
		err = runApply(ctx, client, args[1:])
	case "export":
		err = runExport(ctx, client, config.DefaultTTL, args[1:])
	case "watch":
		err = runWatch(ctx, client, args[1:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}
