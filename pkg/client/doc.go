// Package client connects a host notification source to typed handlers.
//
// The host calls back with one raw record per notification. A Client
// subscribes to a [Source], decodes each record with notification.Decode,
// records the outcome to an optional capture log and metrics recorder, and
// invokes the registered handlers:
//
//	c, err := client.New(client.Config{
//	    Source:  host,
//	    Strings: host.Strings(),
//	    Logger:  slog.Default(),
//	})
//	c.OnNotification(func(n notification.Notification) {
//	    switch v := n.(type) {
//	    case notification.ObjectAdded:
//	        fmt.Println("added", v.Child)
//	    }
//	})
//	c.Start()
//	defer c.Stop()
//
// Handlers run synchronously on the goroutine that delivered the record, in
// registration order. The client neither queues nor reorders records.
package client
