/*
Package session offers the CWMP session state machine.

A Session is created for each CPE connection, using the New function
and a Handler. Each HTTP request body received on the connection is
passed to Session.Exchange, which returns the Reply to write.

Session execution

CWMP sessions are driven by the CPE. The CPE opens a session with an
Inform and may then send further requests (GetRPCMethods,
TransferComplete and so on), each of which the session answers directly.
When the CPE has nothing more to send it posts an empty message, and the
session moves to StatusDraining.

While draining, each empty message is answered with the next command
from the session's queue, and at most one command is outstanding at a
time. The CPE's response or fault is passed to the Handler and answered
with an empty 204 reply; the next command is only sent on the following
empty message. An empty message received with the queue empty ends the
session.

Any message that does not fit this sequence, including malformed XML or
an unsupported method, ends the session with an empty 200 reply. Errors
are recorded on the session (see Session.Errors) and reported to the
Handler's OnError before OnClose is called.
*/
package session
