package plesk

import "encoding/xml"

// Request side of the XML API. Field order follows the Plesk schema, which
// rejects out-of-order elements.

type packet struct {
	XMLName     xml.Name       `xml:"packet"`
	Customer    *customerOp    `xml:"customer,omitempty"`
	Webspace    *webspaceOp    `xml:"webspace,omitempty"`
	ServicePlan *servicePlanOp `xml:"service-plan,omitempty"`
	IP          *ipOp          `xml:"ip,omitempty"`
	Server      *serverOp      `xml:"server,omitempty"`
	DNS         *dnsOp         `xml:"dns,omitempty"`
}

type filter struct {
	ID         string `xml:"id,omitempty"`
	Login      string `xml:"login,omitempty"`
	Name       string `xml:"name,omitempty"`
	GUID       string `xml:"guid,omitempty"`
	OwnerID    string `xml:"owner-id,omitempty"`
	OwnerLogin string `xml:"owner-login,omitempty"`
	SiteID     string `xml:"site-id,omitempty"`
}

type empty struct{}

type dataset struct {
	GenInfo       *empty `xml:"gen_info,omitempty"`
	Hosting       *empty `xml:"hosting,omitempty"`
	Limits        *empty `xml:"limits,omitempty"`
	Stat          *empty `xml:"stat,omitempty"`
	Subscriptions *empty `xml:"subscriptions,omitempty"`
}

type getOp struct {
	Filter  filter   `xml:"filter"`
	Dataset *dataset `xml:"dataset,omitempty"`
}

type delOp struct {
	Filter filter `xml:"filter"`
}

type customerOp struct {
	Get *getOp       `xml:"get,omitempty"`
	Add *customerAdd `xml:"add,omitempty"`
	Del *delOp       `xml:"del,omitempty"`
}

type customerAdd struct {
	PName  string `xml:"gen_info>pname"`
	Login  string `xml:"gen_info>login"`
	Passwd string `xml:"gen_info>passwd"`
	Email  string `xml:"gen_info>email"`
}

type webspaceOp struct {
	Get    *getOp        `xml:"get,omitempty"`
	Add    *webspaceAdd  `xml:"add,omitempty"`
	Set    *webspaceSet  `xml:"set,omitempty"`
	Del    *delOp        `xml:"del,omitempty"`
	Switch *switchPlanOp `xml:"switch-subscription,omitempty"`
}

type property struct {
	Name  string `xml:"name"`
	Value string `xml:"value"`
}

type genSetup struct {
	Name      string `xml:"name,omitempty"`
	OwnerID   string `xml:"owner-id,omitempty"`
	HType     string `xml:"htype,omitempty"`
	IPAddress string `xml:"ip_address,omitempty"`
	Status    string `xml:"status,omitempty"`
}

type vrtHst struct {
	Properties []property `xml:"property"`
	IPAddress  string     `xml:"ip_address,omitempty"`
}

type hosting struct {
	VrtHst vrtHst `xml:"vrt_hst"`
}

type webspaceAdd struct {
	GenSetup genSetup `xml:"gen_setup"`
	Hosting  hosting  `xml:"hosting"`
	PlanName string   `xml:"plan-name"`
}

type webspaceValues struct {
	GenSetup *genSetup `xml:"gen_setup,omitempty"`
	Hosting  *hosting  `xml:"hosting,omitempty"`
}

type webspaceSet struct {
	Filter filter         `xml:"filter"`
	Values webspaceValues `xml:"values"`
}

type switchPlanOp struct {
	Filter   filter `xml:"filter"`
	PlanGUID string `xml:"plan-guid"`
}

type servicePlanOp struct {
	Get *getOp `xml:"get,omitempty"`
}

type ipOp struct {
	Get *empty `xml:"get,omitempty"`
}

type serverOp struct {
	CreateSession *createSession `xml:"create_session,omitempty"`
}

type createSession struct {
	Login        string `xml:"login"`
	UserIP       string `xml:"data>user_ip"`
	SourceServer string `xml:"data>source_server"`
}

type dnsOp struct {
	GetRec *delOp `xml:"get_rec,omitempty"`
}

// Response side. Every operation answers with one or more <result>
// elements; authentication and parse failures come back as <system>.

type result struct {
	Status    string     `xml:"status"`
	ErrCode   string     `xml:"errcode"`
	ErrText   string     `xml:"errtext"`
	ID        string     `xml:"id"`
	GUID      string     `xml:"guid"`
	Name      string     `xml:"name"`
	Data      resultData `xml:"data"`
	Addresses []ipInfo   `xml:"addresses>ip_info"`
}

type resultData struct {
	GenInfo       genInfo        `xml:"gen_info"`
	Hosting       hosting        `xml:"hosting"`
	Limits        []limit        `xml:"limits>limit"`
	Stat          stat           `xml:"stat"`
	Subscriptions []subscription `xml:"subscriptions>subscription"`

	// dns get_rec
	Type  string `xml:"type"`
	Value string `xml:"value"`
}

type genInfo struct {
	Name     string `xml:"name"`
	Login    string `xml:"login"`
	PName    string `xml:"pname"`
	Email    string `xml:"email"`
	OwnerID  string `xml:"owner-id"`
	Status   int    `xml:"status"`
	RealSize int64  `xml:"real_size"`
	DNSIP    string `xml:"dns_ip_address"`
}

type limit struct {
	Name  string `xml:"name"`
	Value string `xml:"value"`
}

type stat struct {
	Traffic int64 `xml:"traffic"`
	Box     int64 `xml:"box"`
	Subdom  int64 `xml:"subdom"`
}

type subscription struct {
	PlanGUID string `xml:"plan>plan-guid"`
}

type ipInfo struct {
	Address string `xml:"ip_address"`
	Type    string `xml:"type"`
}

// property returns the named hosting property
func (h hosting) property(name string) string {
	for _, p := range h.VrtHst.Properties {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

// limit returns the raw value of the named limit
func (d resultData) limit(name string) (string, bool) {
	for _, l := range d.Limits {
		if l.Name == name {
			return l.Value, true
		}
	}
	return "", false
}
