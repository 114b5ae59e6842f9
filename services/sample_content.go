package services

import (
	"strings"

	"legal_editor_app_go/services/pagination"
)

// SampleContent seeds new documents: a short agreement with one manual page break
var SampleContent = strings.Join([]string{
	`<h1>Legal Document Template</h1>`,
	`<p>This is a professional document editor designed for legal professionals. You can format text, add headings, and create structured documents with proper pagination.</p>`,
	`<h2>Key Features</h2>`,
	`<ul>`,
	`<li>Rich text formatting</li>`,
	`<li>Page boundaries and pagination</li>`,
	`<li>Headers and footers with page numbers</li>`,
	`<li>Manual and automatic page breaks</li>`,
	`<li>Print-ready output</li>`,
	`</ul>`,
	`<p>Start typing to create your legal document. The editor will automatically handle page breaks and maintain professional formatting throughout your document.</p>`,
	`<h2>Sample Legal Content</h2>`,
	`<p>WHEREAS, the parties wish to enter into this agreement for the purpose of establishing terms and conditions that will govern their relationship;</p>`,
	`<p>NOW, THEREFORE, in consideration of the mutual covenants and agreements contained herein, the parties agree as follows:</p>`,
	pagination.PageBreakHTML,
	`<h3>1. Definitions</h3>`,
	`<p>For the purposes of this Agreement, the following terms shall have the meanings set forth below:</p>`,
	`<p>(a) "Agreement" means this document and all amendments, modifications, and supplements hereto.</p>`,
	`<p>(b) "Party" or "Parties" means the individual or entity entering into this Agreement.</p>`,
	`<h3>2. Terms and Conditions</h3>`,
	`<p>The parties acknowledge that they have read and understood all terms and conditions set forth in this Agreement.</p>`,
	`<p>This Agreement shall be binding upon the parties and their respective heirs, successors, and assigns.</p>`,
	`<h3>3. Governing Law</h3>`,
	`<p>This Agreement shall be governed by and construed in accordance with the laws of the jurisdiction in which it is executed.</p>`,
	`<p>Any disputes arising under this Agreement shall be resolved through binding arbitration.</p>`,
	`<h3>4. Miscellaneous</h3>`,
	`<p>This Agreement constitutes the entire agreement between the parties and supersedes all prior negotiations, representations, or agreements relating to the subject matter hereof.</p>`,
	`<p>If any provision of this Agreement is held to be invalid or unenforceable, the remaining provisions shall continue in full force and effect.</p>`,
	`<p>This Agreement may be executed in counterparts, each of which shall be deemed an original and all of which together shall constitute one and the same instrument.</p>`,
}, "\n")
